package service

import (
	"context"
	"fmt"

	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=hazard.go -destination=mocks/hazard_mock.go -package=mocks

// HazardRepository определяет контракт для чтения пожаров и зон эвакуации из хранилища
type HazardRepository interface {
	ListActiveHazards(ctx context.Context) ([]*models.Hazard, error)
	ListActiveEvacZones(ctx context.Context) ([]*models.EvacZone, error)
	GetActiveHazardsFromCache(ctx context.Context) ([]*models.Hazard, error)
	SetActiveHazardsCache(ctx context.Context, hazards []*models.Hazard) error
	InvalidateActiveHazardsCache(ctx context.Context) error
	SeedHazard(ctx context.Context, hazard *models.Hazard) (bool, error)
	SeedEvacZone(ctx context.Context, zone *models.EvacZone) (bool, error)
}

// HazardFeed определяет контракт получения снимка активных пожаров и зон
type HazardFeed interface {
	ActiveHazards(ctx context.Context) ([]*models.Hazard, error)
	ActiveEvacZones(ctx context.Context) ([]*models.EvacZone, error)
}

type hazardFeed struct {
	repo    HazardRepository
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

func NewHazardFeed(repo HazardRepository, m *metrics.Metrics, logger *logrus.Logger) HazardFeed {
	return &hazardFeed{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ActiveHazards возвращает активные пожары: сначала из кэша, затем из бд.
// Ошибки кэша не прерывают чтение из бд.
func (f *hazardFeed) ActiveHazards(ctx context.Context) ([]*models.Hazard, error) {
	log := f.logger.WithFields(logrus.Fields{
		"service": "hazard_feed",
		"method":  "ActiveHazards",
	})

	cached, err := f.repo.GetActiveHazardsFromCache(ctx)
	switch {
	case err != nil:
		f.metrics.HazardCache.WithLabelValues("error").Inc()
		log.WithError(err).Warn("Failed to read active hazards from cache, falling back to database")
	case cached != nil:
		f.metrics.HazardCache.WithLabelValues("hit").Inc()
		log.WithField("count", len(cached)).Debug("Active hazards served from cache")
		return cached, nil
	default:
		f.metrics.HazardCache.WithLabelValues("miss").Inc()
	}

	hazards, err := f.repo.ListActiveHazards(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list active hazards from repository")
		return nil, fmt.Errorf("service: could not list active hazards: %w", err)
	}

	if err := f.repo.SetActiveHazardsCache(ctx, hazards); err != nil {
		log.WithError(err).Warn("Failed to cache active hazards")
	}

	log.WithField("count", len(hazards)).Debug("Active hazards loaded from database")
	return hazards, nil
}

// ActiveEvacZones возвращает активные зоны эвакуации
func (f *hazardFeed) ActiveEvacZones(ctx context.Context) ([]*models.EvacZone, error) {
	zones, err := f.repo.ListActiveEvacZones(ctx)
	if err != nil {
		f.logger.WithFields(logrus.Fields{
			"service": "hazard_feed",
			"method":  "ActiveEvacZones",
		}).WithError(err).Error("Failed to list active evac zones from repository")
		return nil, fmt.Errorf("service: could not list active evac zones: %w", err)
	}
	return zones, nil
}
