package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Webhook-Signature"

	// minPopRetryDelay - пауза после ошибки чтения очереди, если WEBHOOK_TIMEOUT меньше
	minPopRetryDelay = time.Second
)

// Worker забирает события из очереди Redis и доставляет их на WEBHOOK_URL
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	metrics     *metrics.Metrics
	clock       clockwork.Clock
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, m *metrics.Metrics, clock clockwork.Clock) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		metrics:     m,
		clock:       clock,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Run обрабатывает очередь до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Starting webhook worker...")
	for {
		if ctx.Err() != nil {
			w.logger.Info("Stopping webhook worker.")
			return nil
		}

		// BRPOP - блокирующее извлечение из правой части списка, 0 - бесконечное ожидание
		result, err := w.redisClient.BRPop(ctx, 0, alertQueueKey).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop alert event from Redis")
			w.wait(ctx, max(w.cfg.WebhookTimeout, minPopRetryDelay))
			continue
		}

		// result[0] - ключ, result[1] - значение
		payload := result[1]
		var event AlertEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			w.logger.WithError(err).Error("Failed to unmarshal alert event from Redis")
			continue
		}

		w.deliver(ctx, event, payload)
	}
}

func (w *Worker) deliver(ctx context.Context, event AlertEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"client_id": event.ClientID,
		"num_fires": len(event.Fires),
	})
	log.Debug("Processing alert event...")

	if w.cfg.WebhookURL == "" {
		w.metrics.WebhookDeliveries.WithLabelValues("dropped").Inc()
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return
	}

	maxRetries := max(w.cfg.WebhookMaxRetries, 1)
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		err := w.post(ctx, rawPayload)
		if err == nil {
			w.metrics.WebhookDeliveries.WithLabelValues("success").Inc()
			log.Info("Webhook delivered successfully.")
			return
		}

		retriesLeft := maxRetries - 1 - i
		if retriesLeft == 0 {
			log.WithError(err).Warn("Webhook delivery attempt failed.")
			break
		}
		log.WithError(err).Warnf("Webhook delivery attempt failed. Retrying in %v. Retries left: %d", delay, retriesLeft)
		if !w.wait(ctx, delay) {
			return
		}
		delay *= 2 // Экспоненциальная задержка
	}

	w.metrics.WebhookDeliveries.WithLabelValues("error").Inc()
	log.Errorf("Failed to deliver webhook for alert event after %d attempts.", maxRetries)
}

func (w *Worker) post(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status code %d", resp.StatusCode)
	}
	return nil
}

// wait ждет d или отмены контекста; возвращает false при отмене
func (w *Worker) wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-w.clock.After(d):
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
