package models

import (
	"time"
)

// Hazard - активный пожар (инцидент) из внешнего хранилища, ядро его не изменяет
type Hazard struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Location         string     `json:"location"`
	County           string     `json:"county"`
	IsActive         bool       `json:"is_active"`
	Final            bool       `json:"final"`
	UpdatedAt        time.Time  `json:"updated_datetime"`
	StartedAt        time.Time  `json:"start_datetime"`
	ExtinguishedAt   *time.Time `json:"extinguished_datetime"`
	AcresBurned      float64    `json:"acres_burned"`
	PercentContained float64    `json:"percent_contained"`
	ControlStatement *string    `json:"control_statement"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	FireType         string     `json:"fire_type"`
	URL              *string    `json:"url"`
	InsertedAt       *time.Time `json:"inserted_at"`
}
