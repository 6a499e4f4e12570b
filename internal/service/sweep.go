package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_alert_system/internal/alertcache"
	"github.com/shenikar/fire_alert_system/internal/geo"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/shenikar/fire_alert_system/internal/registry"
	"github.com/shenikar/fire_alert_system/internal/safepoint"
	"github.com/shenikar/fire_alert_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=sweep.go -destination=mocks/alert_mock.go -package=mocks

// NoFiresMessage - ответ на немедленную проверку, если рядом нет пожаров
const NoFiresMessage = "No fires detected."

// AlertService определяет контракт для обработчика вебсокетов
type AlertService interface {
	// Evaluate немедленно проверяет клиента и отправляет оповещение или NoFiresMessage
	Evaluate(ctx context.Context, clientID string) error
	// ResetClient забывает, какие пожары уже были отправлены клиенту
	ResetClient(clientID string)
}

// SweeperConfig - параметры цикла обхода
type SweeperConfig struct {
	Interval           time.Duration
	EvictOnSendFailure bool
}

// Sweeper периодически обходит всех подключенных клиентов и рассылает оповещения
type Sweeper struct {
	feed      HazardFeed
	registry  *registry.Registry
	cache     *alertcache.Cache
	resolver  *safepoint.Resolver
	publisher webhook.AlertPublisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	clock     clockwork.Clock
	cfg       SweeperConfig
}

func NewSweeper(
	feed HazardFeed,
	reg *registry.Registry,
	cache *alertcache.Cache,
	resolver *safepoint.Resolver,
	publisher webhook.AlertPublisher,
	m *metrics.Metrics,
	logger *logrus.Logger,
	clock clockwork.Clock,
	cfg SweeperConfig,
) *Sweeper {
	return &Sweeper{
		feed:      feed,
		registry:  reg,
		cache:     cache,
		resolver:  resolver,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		clock:     clock,
		cfg:       cfg,
	}
}

// Run выполняет обход каждые cfg.Interval до отмены контекста.
// Ошибка одного цикла не останавливает планировщик.
func (s *Sweeper) Run(ctx context.Context) error {
	log := s.logger.WithField("service", "sweeper")
	log.WithField("interval", s.cfg.Interval.String()).Info("Starting sweeper...")

	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping sweeper.")
			return nil
		case <-ticker.Chan():
			if err := s.Sweep(ctx); err != nil {
				log.WithError(err).Error("Sweep cycle aborted")
			}
		}
	}
}

// Sweep выполняет один цикл обхода всех клиентов
func (s *Sweeper) Sweep(ctx context.Context) error {
	start := s.clock.Now()
	log := s.logger.WithFields(logrus.Fields{
		"service": "sweeper",
		"method":  "Sweep",
	})

	hazards, err := s.feed.ActiveHazards(ctx)
	if err != nil {
		s.metrics.Sweeps.WithLabelValues("error").Inc()
		return fmt.Errorf("service: sweep could not fetch hazards: %w", err)
	}

	zones := &zoneSnapshot{feed: s.feed, logger: log}
	alerted := 0
	s.registry.ForEach(func(c *registry.Client) {
		if ctx.Err() != nil {
			return
		}
		var (
			sent    bool
			evalErr error
		)
		c.Exclusive(func() {
			sent, evalErr = s.evaluate(ctx, c, hazards, zones, false)
		})
		if evalErr != nil {
			log.WithError(evalErr).WithField("client_id", c.ID).Warn("Failed to evaluate client")
		}
		if sent {
			alerted++
		}
	})

	s.metrics.Sweeps.WithLabelValues("ok").Inc()
	s.metrics.SweepDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.ConnectedClients.Set(float64(s.registry.Len()))
	log.WithFields(logrus.Fields{
		"hazards":        len(hazards),
		"clients":        s.registry.Len(),
		"alerts_sent":    alerted,
		"zones_resolved": zones.loaded,
	}).Debug("Sweep completed")
	return nil
}

// Evaluate немедленно проверяет одного клиента, например после рукопожатия
func (s *Sweeper) Evaluate(ctx context.Context, clientID string) error {
	c, err := s.registry.Get(clientID)
	if err != nil {
		return fmt.Errorf("service: could not evaluate client: %w", err)
	}

	hazards, err := s.feed.ActiveHazards(ctx)
	if err != nil {
		return fmt.Errorf("service: could not fetch hazards for client %s: %w", clientID, err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "sweeper",
		"method":    "Evaluate",
		"client_id": clientID,
	})
	zones := &zoneSnapshot{feed: s.feed, logger: log}

	c.Exclusive(func() {
		_, err = s.evaluate(ctx, c, hazards, zones, true)
	})
	return err
}

// ResetClient очищает кэш отправленных оповещений клиента
func (s *Sweeper) ResetClient(clientID string) {
	s.cache.Clear(clientID)
}

// evaluate отправляет клиенту оповещение о новых пожарах в его ограничивающем прямоугольнике.
// Вызывается под c.Exclusive.
func (s *Sweeper) evaluate(ctx context.Context, c *registry.Client, hazards []*models.Hazard, zones *zoneSnapshot, replyWhenClear bool) (bool, error) {
	loc := c.Location()
	box := geo.ComputeBoundingBox(geo.Point{Lat: loc.Latitude, Lon: loc.Longitude}, loc.RadiusMeters)

	nearby := 0
	fresh := make([]*models.Hazard, 0)
	for _, h := range hazards {
		if h == nil || !h.IsActive || !box.Contains(h.Latitude, h.Longitude) {
			continue
		}
		nearby++
		if !s.cache.Seen(c.ID, h.ID, h.UpdatedAt) {
			fresh = append(fresh, h)
		}
	}

	if nearby == 0 {
		if !replyWhenClear {
			return false, nil
		}
		s.metrics.NoFireReplies.Inc()
		if err := c.Send(models.NewPlainMessage(NoFiresMessage)); err != nil {
			return false, s.handleSendFailure(c, err)
		}
		return false, nil
	}
	if len(fresh) == 0 {
		return false, nil
	}

	safe := s.resolver.Resolve(loc, zones.get(ctx), hazards)
	s.metrics.SafePoints.WithLabelValues(safe.Tier).Inc()

	if err := c.Send(models.NewFireAlert(fresh, safe)); err != nil {
		return false, s.handleSendFailure(c, err)
	}

	for _, h := range fresh {
		s.cache.MarkSeen(c.ID, h.ID, h.UpdatedAt)
	}
	s.metrics.AlertsSent.Inc()
	s.metrics.HazardsAlerted.Add(float64(len(fresh)))

	s.logger.WithFields(logrus.Fields{
		"service":   "sweeper",
		"client_id": c.ID,
		"num_fires": len(fresh),
		"safe_tier": safe.Tier,
	}).Info("Fire alert sent")

	event := webhook.AlertEvent{
		ClientID:  c.ID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Fires:     fresh,
		SafePoint: safe,
		Timestamp: s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("client_id", c.ID).Warn("Failed to publish alert event")
	}
	return true, nil
}

// handleSendFailure исключает клиента, запись которому не удалась
func (s *Sweeper) handleSendFailure(c *registry.Client, sendErr error) error {
	s.metrics.SendFailures.Inc()
	if errors.Is(sendErr, registry.ErrClientClosed) || !s.cfg.EvictOnSendFailure {
		return fmt.Errorf("service: send to client %s failed: %w", c.ID, sendErr)
	}

	if s.registry.RemoveClient(c) {
		if err := c.Close(); err != nil {
			s.logger.WithError(err).WithField("client_id", c.ID).Debug("Failed to close evicted client")
		}
		s.cache.Clear(c.ID)
		s.metrics.ConnectedClients.Set(float64(s.registry.Len()))
		s.logger.WithField("client_id", c.ID).Warn("Client evicted after send failure")
	}
	return fmt.Errorf("service: send to client %s failed: %w", c.ID, sendErr)
}

// zoneSnapshot лениво загружает зоны эвакуации не более одного раза за цикл
type zoneSnapshot struct {
	feed   HazardFeed
	logger *logrus.Entry
	loaded bool
	zones  []*models.EvacZone
}

func (z *zoneSnapshot) get(ctx context.Context) []*models.EvacZone {
	if z.loaded {
		return z.zones
	}
	z.loaded = true

	zones, err := z.feed.ActiveEvacZones(ctx)
	if err != nil {
		z.logger.WithError(err).Warn("Evac zones unavailable, resolving without zones")
		return nil
	}
	z.zones = zones
	return zones
}
