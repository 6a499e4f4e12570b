// Package seed заполняет хранилище демонстрационными пожарами и зонами эвакуации.
package seed

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_alert_system/internal/service"
	applog "github.com/shenikar/fire_alert_system/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Result - сколько записей было вставлено; существующие записи не изменяются
type Result struct {
	HazardsInserted int
	ZonesInserted   int
}

// Run вставляет отсутствующие демонстрационные данные и сбрасывает кэш активных пожаров
func Run(ctx context.Context, repo service.HazardRepository, clock clockwork.Clock, logger *logrus.Logger) (Result, error) {
	var res Result
	log := applog.Component(logger, "seed")

	for _, fire := range Fires(clock.Now().UTC()) {
		inserted, err := repo.SeedHazard(ctx, fire)
		if err != nil {
			return res, fmt.Errorf("seed fires: %w", err)
		}
		if inserted {
			res.HazardsInserted++
			log.WithField("hazard_id", fire.ID).Debug("Hazard inserted")
		}
	}

	for _, zone := range EvacZones() {
		inserted, err := repo.SeedEvacZone(ctx, zone)
		if err != nil {
			return res, fmt.Errorf("seed evac zones: %w", err)
		}
		if inserted {
			res.ZonesInserted++
			log.WithField("zone_id", zone.ID).Debug("Evac zone inserted")
		}
	}

	if res.HazardsInserted > 0 {
		if err := repo.InvalidateActiveHazardsCache(ctx); err != nil {
			log.WithError(err).Warn("Failed to invalidate active hazards cache")
		}
	}

	log.WithFields(logrus.Fields{
		"hazards_inserted": res.HazardsInserted,
		"zones_inserted":   res.ZonesInserted,
	}).Info("Seed data applied")
	return res, nil
}
