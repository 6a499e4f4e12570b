package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) (*Worker, *metrics.Metrics) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	m := metrics.NewMetricsForTesting()
	return NewWorker(nil, logger, cfg, m, clockwork.NewRealClock()), m
}

func testEvent() (AlertEvent, string) {
	event := AlertEvent{
		ClientID:  "client-1",
		Latitude:  37.42,
		Longitude: -122.08,
		Fires:     []*models.Hazard{{ID: "D1", Name: "Shoreline Fire", IsActive: true}},
		SafePoint: models.SafePoint{Latitude: 37.42, Longitude: -122.07, Name: "exit", Tier: models.TierEvacZoneExit},
		Timestamp: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestWorker_DeliverSigned(t *testing.T) {
	// Подготовка
	var gotSignature string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get(signatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker, m := newTestWorker(cfg)
	event, payload := testEvent()

	// Действие
	worker.deliver(context.Background(), event, payload)

	// Проверки
	assert.Equal(t, payload, string(gotBody))
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookDeliveries.WithLabelValues("success")))
}

func TestWorker_DeliverRetriesThenFails(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker, m := newTestWorker(cfg)
	event, payload := testEvent()

	worker.deliver(context.Background(), event, payload)

	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookDeliveries.WithLabelValues("error")))
}

func TestWorker_DeliverRecoversAfterFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	worker, m := newTestWorker(cfg)
	event, payload := testEvent()

	worker.deliver(context.Background(), event, payload)

	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookDeliveries.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.WebhookDeliveries.WithLabelValues("error")))
}

func TestWorker_DeliverWithoutURL(t *testing.T) {
	worker, m := newTestWorker(&config.Config{WebhookMaxRetries: 3})
	event, payload := testEvent()

	worker.deliver(context.Background(), event, payload)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookDeliveries.WithLabelValues("dropped")))
}

func TestWorker_DeliverStopsOnCancel(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 5,
		WebhookBaseDelay:  time.Hour,
	}
	worker, _ := newTestWorker(cfg)
	event, payload := testEvent()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.deliver(ctx, event, payload)
		close(done)
	}()

	require.Eventually(t, func() bool { return attempts.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliver did not return after context cancellation")
	}
	assert.Equal(t, int32(1), attempts.Load())
}

func TestWorker_RunBacksOffWhenQueueUnavailable(t *testing.T) {
	// Подготовка
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	clock := clockwork.NewFakeClock()
	// Нулевой таймаут не должен превращать цикл в busy loop
	worker := NewWorker(rdb, logger, &config.Config{WebhookTimeout: 0}, metrics.NewMetricsForTesting(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// Действие
	go func() { done <- worker.Run(ctx) }()

	// Проверки
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	// После паузы воркер снова обращается к очереди и снова ждет
	clock.Advance(minPopRetryDelay)
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestGenerateHMACSHA256(t *testing.T) {
	// Известное значение HMAC-SHA256("data", "key")
	assert.Equal(t,
		"5031fe3d989c6d1537a013fa6e739da23463fdaec3b70137d828e36ace221bd0",
		generateHMACSHA256("data", "key"))
}
