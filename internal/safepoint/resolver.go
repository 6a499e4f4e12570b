// Package safepoint выбирает ближайшую безопасную точку для клиента:
// выход из зоны эвакуации, затем резервное место вдали от пожаров, затем
// фиксированную точку последнего резерва.
package safepoint

import (
	"fmt"

	"github.com/shenikar/fire_alert_system/internal/geo"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultFireExclusionKm - радиус вокруг активного пожара, в котором резервное место не предлагается
const DefaultFireExclusionKm = 2.0

// Resolver - цепочка поиска безопасной точки. Всегда возвращает какую-нибудь точку.
type Resolver struct {
	places      []models.SafePlace
	exclusionKm float64
	logger      *logrus.Logger
}

// NewResolver создает Resolver со списком резервных мест и радиусом исключения
func NewResolver(places []models.SafePlace, exclusionKm float64, logger *logrus.Logger) *Resolver {
	if exclusionKm <= 0 {
		exclusionKm = DefaultFireExclusionKm
	}
	return &Resolver{
		places:      places,
		exclusionKm: exclusionKm,
		logger:      logger,
	}
}

// Resolve выбирает безопасную точку для клиента. Порядок строгий:
// выход из зоны, в которой находится клиент; резервное место; последний резерв.
// При равенстве расстояний побеждает первый встреченный кандидат.
func (r *Resolver) Resolve(loc models.Location, zones []*models.EvacZone, hazards []*models.Hazard) models.SafePoint {
	client := geo.Point{Lat: loc.Latitude, Lon: loc.Longitude}

	if point, ok := r.nearestZoneExit(client, zones); ok {
		return point
	}
	if point, ok := r.nearestFallbackPlace(client, hazards); ok {
		return point
	}
	return models.SafePoint{
		Latitude:  LastResortLatitude,
		Longitude: LastResortLongitude,
		Name:      LastResortName,
		Tier:      models.TierLastResort,
	}
}

func (r *Resolver) nearestZoneExit(client geo.Point, zones []*models.EvacZone) (models.SafePoint, bool) {
	var (
		best     models.SafePoint
		bestDist float64
		found    bool
	)
	for _, zone := range zones {
		if zone == nil || !zone.IsActive {
			continue
		}
		geometry, err := geo.ParseGeometry(zone.GeometryGeoJSON)
		if err != nil {
			r.logger.WithError(err).WithField("zone_id", zone.ID).Debug("Skipping evac zone with unusable geometry")
			continue
		}
		if !geometry.ContainsPoint(client) {
			continue
		}

		candidate := models.SafePoint{Tier: models.TierEvacZoneExit}
		exit, ok := geometry.NearestBoundaryPoint(client)
		if ok {
			candidate.Name = fmt.Sprintf("Nearest exit from evac zone: %s", zone.DisplayName())
		} else {
			exit = geometry.Centroid()
			candidate.Name = fmt.Sprintf("Centroid of evac zone: %s", zone.DisplayName())
			candidate.Tier = models.TierEvacZoneCentroid
		}
		candidate.Latitude, candidate.Longitude = exit.Lat, exit.Lon

		dist := geo.DistanceKm(client, exit)
		if !found || dist < bestDist {
			best, bestDist, found = candidate, dist, true
		}
	}
	return best, found
}

func (r *Resolver) nearestFallbackPlace(client geo.Point, hazards []*models.Hazard) (models.SafePoint, bool) {
	var (
		best     models.SafePlace
		bestDist float64
		found    bool
	)
	for _, place := range r.places {
		if r.nearActiveHazard(place, hazards) {
			continue
		}
		dist := geo.HaversineDistanceKm(client.Lat, client.Lon, place.Latitude, place.Longitude)
		if !found || dist < bestDist {
			best, bestDist, found = place, dist, true
		}
	}
	if !found {
		return models.SafePoint{}, false
	}
	return models.SafePoint{
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
		Name:      best.Name,
		Tier:      models.TierFallbackPlace,
	}, true
}

func (r *Resolver) nearActiveHazard(place models.SafePlace, hazards []*models.Hazard) bool {
	for _, h := range hazards {
		if h == nil || !h.IsActive {
			continue
		}
		if geo.HaversineDistanceKm(place.Latitude, place.Longitude, h.Latitude, h.Longitude) <= r.exclusionKm {
			return true
		}
	}
	return false
}
