package safepoint

import "github.com/shenikar/fire_alert_system/internal/models"

// Координаты последнего резерва, если ни зона, ни резервный список не дали точки
const (
	LastResortLatitude  = 37.4220
	LastResortLongitude = -122.0841
	LastResortName      = "Default safe location (no evacuation data available)"
)

// DefaultFallbackPlaces - встроенный список безопасных мест округа Санта-Клара
func DefaultFallbackPlaces() []models.SafePlace {
	return []models.SafePlace{
		{ID: "SAFE_MV_CC", Name: "Mountain View Community Center", Latitude: 37.3920, Longitude: -122.0780},
		{ID: "SAFE_PA_CUBBERLEY", Name: "Cubberley Community Center", Latitude: 37.4180, Longitude: -122.1130},
		{ID: "SAFE_SUNNYVALE_CC", Name: "Sunnyvale Community Center", Latitude: 37.3710, Longitude: -122.0270},
		{ID: "SAFE_CUPERTINO_QC", Name: "Quinlan Community Center", Latitude: 37.3225, Longitude: -122.0420},
		{ID: "SAFE_SJ_FAIRGROUNDS", Name: "Santa Clara County Fairgrounds", Latitude: 37.2997, Longitude: -121.8527},
		{ID: "SAFE_SJ_CONVENTION", Name: "San Jose McEnery Convention Center", Latitude: 37.3295, Longitude: -121.8890},
	}
}
