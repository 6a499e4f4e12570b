package models

// Уровни цепочки поиска безопасной точки
const (
	TierEvacZoneExit     = "evac_zone_exit"
	TierEvacZoneCentroid = "evac_zone_centroid"
	TierFallbackPlace    = "fallback_place"
	TierLastResort       = "last_resort"
)

// SafePlace - статическое безопасное место из встроенного списка
type SafePlace struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SafePoint - итоговая точка, отправляемая клиенту вместе с оповещением
type SafePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Tier      string  `json:"tier"`
}
