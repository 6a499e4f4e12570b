package models

import "time"

// EvacZone - зона эвакуации (приказ или предупреждение) с границей в GeoJSON
type EvacZone struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	County          string     `json:"county"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	GeometryGeoJSON string     `json:"geometry_geojson"`
	IsActive        bool       `json:"is_active"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// DisplayName возвращает имя зоны, а если оно пустое - её идентификатор
func (z *EvacZone) DisplayName() string {
	if z.Name != "" {
		return z.Name
	}
	return z.ID
}
