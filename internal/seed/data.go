package seed

import (
	"time"

	"github.com/shenikar/fire_alert_system/internal/models"
)

// Fires возвращает демонстрационные пожары округа Санта-Клара
func Fires(now time.Time) []*models.Hazard {
	return []*models.Hazard{
		{
			ID: "D1", Name: "Test Fire A", Location: "Shoreline Park", County: "Santa Clara",
			IsActive: true, Final: false, UpdatedAt: now, StartedAt: now,
			AcresBurned: 120.5, PercentContained: 35.0,
			Latitude: 37.423, Longitude: -122.084, FireType: "Wildfire",
		},
		{
			ID: "D2", Name: "Test Fire B", Location: "Googleplex", County: "Santa Clara",
			IsActive: true, Final: false, UpdatedAt: now, StartedAt: now,
			AcresBurned: 45.0, PercentContained: 80.0,
			Latitude: 37.422, Longitude: -122.086, FireType: "Brush Fire",
		},
		{
			ID: "D3", Name: "Test Fire C", Location: "Downtown Mountain View", County: "Santa Clara",
			IsActive: false, Final: true, UpdatedAt: now, StartedAt: now,
			AcresBurned: 10.0, PercentContained: 100.0,
			Latitude: 37.389, Longitude: -122.083, FireType: "Structure Fire",
		},
		{
			ID: "TEST-SJSU-1", Name: "Test SJSU Fire", Location: "San José State University", County: "Santa Clara",
			IsActive: true, Final: false, UpdatedAt: now, StartedAt: now,
			AcresBurned: 12.3, PercentContained: 10.0,
			Latitude: 37.3352, Longitude: -121.8811, FireType: "Wildfire",
		},
	}
}

// EvacZones возвращает демонстрационные зоны эвакуации
func EvacZones() []*models.EvacZone {
	return []*models.EvacZone{
		{
			ID:              "EVAC_MV_1",
			Name:            "Mountain View Evacuation Order",
			County:          "Santa Clara",
			Status:          "ORDER",
			Notes:           "Test evac zone covering Shoreline / Googleplex area.",
			GeometryGeoJSON: `{"type":"Polygon","coordinates":[[[-122.090,37.430],[-122.070,37.430],[-122.070,37.410],[-122.090,37.410],[-122.090,37.430]]]}`,
			IsActive:        true,
		},
		{
			ID:              "EVAC_SJSU_1",
			Name:            "SJSU Evacuation Warning",
			County:          "Santa Clara",
			Status:          "WARNING",
			Notes:           "Test zone around SJSU campus.",
			GeometryGeoJSON: `{"type":"Polygon","coordinates":[[[-121.890,37.340],[-121.870,37.340],[-121.870,37.330],[-121.890,37.330],[-121.890,37.340]]]}`,
			IsActive:        true,
		},
	}
}
