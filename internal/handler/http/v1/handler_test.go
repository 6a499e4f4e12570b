package v1

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/shenikar/fire_alert_system/docs"
	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/shenikar/fire_alert_system/internal/registry"
	"github.com/shenikar/fire_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	handler  *Handler
	service  *mocks.MockAlertService
	registry *registry.Registry
	router   *gin.Engine
	server   *httptest.Server
}

func testConfig() *config.Config {
	return &config.Config{
		APIKeys:             []string{"test-api-key"},
		DefaultRadiusMeters: 10,
		WSWriteTimeout:      time.Second,
		WSMessageRate:       100,
		WSMessageBurst:      100,
		DuplicatePolicy:     config.DuplicateReplace,
	}
}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T, cfg *config.Config) *testEnv {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockAlertService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	reg := registry.New()
	handler := NewHandler(mockService, reg, metrics.NewMetricsForTesting(), logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{handler: handler, service: mockService, registry: reg, router: router, server: server}
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// dial открывает вебсокет к тестовому серверу
func (e *testEnv) dial(t *testing.T, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/api/v1/ws/alert" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPlain(t *testing.T, conn *websocket.Conn) models.PlainMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg models.PlainMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func expectCloseCode(t *testing.T, conn *websocket.Conn, code int) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var closeErr *websocket.CloseError
	require.True(t, errors.As(err, &closeErr), "expected close error, got %v", err)
	assert.Equal(t, code, closeErr.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestHandler(t, testConfig())

	w := makeRequest(env.router, http.MethodGet, "/api/v1/system/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetStats(t *testing.T) {
	env := newTestHandler(t, testConfig())
	require.NoError(t, env.registry.Add(registry.NewClient("client-1", &nopTransport{}, models.Location{}, 0)))

	w := makeRequest(env.router, http.MethodGet, "/api/v1/connections/stats", map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"connected_clients":1}`, w.Body.String())
}

func TestGetStats_BearerToken(t *testing.T) {
	env := newTestHandler(t, testConfig())

	w := makeRequest(env.router, http.MethodGet, "/api/v1/connections/stats", map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStats_Unauthorized(t *testing.T) {
	env := newTestHandler(t, testConfig())

	w := makeRequest(env.router, http.MethodGet, "/api/v1/connections/stats")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(env.router, http.MethodGet, "/api/v1/connections/stats", map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStats_OpenWithoutKeys(t *testing.T) {
	cfg := testConfig()
	cfg.APIKeys = nil
	env := newTestHandler(t, cfg)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/connections/stats")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsForTesting()
	reg.MustRegister(m.AlertsSent)
	m.AlertsSent.Inc()

	RegisterMetrics(router, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	w := makeRequest(router, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fire_alert_alerts_sent_total 1")
}

func TestRegisterSwagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterSwagger(router)

	w := makeRequest(router, http.MethodGet, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/ws/alert")
	assert.Contains(t, w.Body.String(), "/connections/stats")
}

func TestAlertSocket_MissingClientID(t *testing.T) {
	env := newTestHandler(t, testConfig())

	conn := env.dial(t, "")

	expectCloseCode(t, conn, websocket.ClosePolicyViolation)
	assert.Equal(t, 0, env.registry.Len())
}

func TestAlertSocket_HandshakeAndUpdate(t *testing.T) {
	// Подготовка
	env := newTestHandler(t, testConfig())
	evaluated := make(chan struct{}, 4)

	// Ожидания
	env.service.EXPECT().
		Evaluate(gomock.Any(), "client-1").
		DoAndReturn(func(_ context.Context, _ string) error {
			evaluated <- struct{}{}
			return nil
		}).
		Times(2)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	// Действие
	conn := env.dial(t, "?client_id=client-1")
	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	<-evaluated

	// Проверки
	c, err := env.registry.Get("client-1")
	require.NoError(t, err)
	assert.Equal(t, models.Location{Latitude: 37.42, Longitude: -122.08, RadiusMeters: 10}, c.Location())

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "update_location", "latitude": 37.3352, "longitude": -121.8811, "radius": 250,
	}))
	<-evaluated
	assert.Equal(t, models.Location{Latitude: 37.3352, Longitude: -121.8811, RadiusMeters: 250}, c.Location())
}

func TestAlertSocket_UpdateBeforeHandshakeIgnored(t *testing.T) {
	// Подготовка
	env := newTestHandler(t, testConfig())
	evaluated := make(chan struct{}, 2)

	// Ожидания
	env.service.EXPECT().
		Evaluate(gomock.Any(), "client-1").
		DoAndReturn(func(_ context.Context, _ string) error {
			evaluated <- struct{}{}
			return nil
		}).
		Times(2)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	// Действие
	conn := env.dial(t, "?client_id=client-1")
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "update_location", "latitude": 37.42, "longitude": -122.08}))
	msg := readPlain(t, conn)

	// Проверки
	assert.Equal(t, msgHandshake, msg.Message)
	assert.Equal(t, 0, env.registry.Len())

	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	<-evaluated
	c, err := env.registry.Get("client-1")
	require.NoError(t, err)

	// Повторное рукопожатие после регистрации обновляет координаты
	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.3352, "longitude": -121.8811, "radius": 300}))
	<-evaluated
	assert.Equal(t, models.Location{Latitude: 37.3352, Longitude: -121.8811, RadiusMeters: 300}, c.Location())
	assert.Equal(t, 1, env.registry.Len())
}

func TestAlertSocket_InvalidMessageKeepsConnection(t *testing.T) {
	env := newTestHandler(t, testConfig())
	evaluated := make(chan struct{}, 1)

	env.service.EXPECT().
		Evaluate(gomock.Any(), "client-1").
		DoAndReturn(func(_ context.Context, _ string) error {
			evaluated <- struct{}{}
			return nil
		}).
		Times(1)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	conn := env.dial(t, "?client_id=client-1")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	msg := readPlain(t, conn)
	assert.Equal(t, models.MessageTypeMessage, msg.Type)
	assert.True(t, strings.HasPrefix(msg.Message, msgInvalidInput))

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "subscribe", "latitude": 1, "longitude": 1}))
	msg = readPlain(t, conn)
	assert.Contains(t, msg.Message, "type")

	// Невалидные сообщения не регистрируют клиента
	assert.Equal(t, 0, env.registry.Len())

	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08, "radius": 500}))
	<-evaluated
	assert.Equal(t, 1, env.registry.Len())
}

func TestAlertSocket_EvaluateFailureNotifiesClient(t *testing.T) {
	env := newTestHandler(t, testConfig())

	env.service.EXPECT().
		Evaluate(gomock.Any(), "client-1").
		Return(errors.New("database is down")).
		Times(1)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	conn := env.dial(t, "?client_id=client-1")
	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))

	msg := readPlain(t, conn)
	assert.Equal(t, msgUnavailable, msg.Message)
	assert.Equal(t, 1, env.registry.Len())
}

func TestAlertSocket_DisconnectUnregisters(t *testing.T) {
	env := newTestHandler(t, testConfig())
	reset := make(chan struct{}, 1)

	env.service.EXPECT().Evaluate(gomock.Any(), "client-1").Return(nil).Times(1)
	env.service.EXPECT().
		ResetClient("client-1").
		Do(func(string) { reset <- struct{}{} }).
		Times(1)

	conn := env.dial(t, "?client_id=client-1")
	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	require.Eventually(t, func() bool { return env.registry.Len() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	select {
	case <-reset:
	case <-time.After(2 * time.Second):
		t.Fatal("client cache was not reset after disconnect")
	}
	assert.Equal(t, 0, env.registry.Len())
}

func TestAlertSocket_DuplicateReplace(t *testing.T) {
	env := newTestHandler(t, testConfig())
	evaluated := make(chan struct{}, 2)

	env.service.EXPECT().
		Evaluate(gomock.Any(), "client-1").
		DoAndReturn(func(_ context.Context, _ string) error {
			evaluated <- struct{}{}
			return nil
		}).
		Times(2)
	env.service.EXPECT().ResetClient("client-1").MinTimes(1)

	first := env.dial(t, "?client_id=client-1")
	require.NoError(t, first.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	<-evaluated
	old, err := env.registry.Get("client-1")
	require.NoError(t, err)

	second := env.dial(t, "?client_id=client-1")
	require.NoError(t, second.WriteJSON(map[string]any{"latitude": 37.3352, "longitude": -121.8811}))
	<-evaluated

	// Старое соединение закрыто сервером
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = first.ReadMessage()
	assert.Error(t, err)

	current, err := env.registry.Get("client-1")
	require.NoError(t, err)
	assert.NotSame(t, old, current)
	assert.True(t, old.Closed())
	assert.Equal(t, 37.3352, current.Location().Latitude)
	assert.Equal(t, 1, env.registry.Len())
}

func TestAlertSocket_DuplicateReplaceWaitsForRunningEvaluation(t *testing.T) {
	// Подготовка
	env := newTestHandler(t, testConfig())
	reset := make(chan struct{}, 4)

	// Ожидания
	env.service.EXPECT().Evaluate(gomock.Any(), "client-1").Return(nil).AnyTimes()
	env.service.EXPECT().
		ResetClient("client-1").
		Do(func(string) { reset <- struct{}{} }).
		AnyTimes()

	first := env.dial(t, "?client_id=client-1")
	require.NoError(t, first.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	require.Eventually(t, func() bool { return env.registry.Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	old, err := env.registry.Get("client-1")
	require.NoError(t, err)

	// Оценка старой сессии еще выполняется
	held := make(chan struct{})
	release := make(chan struct{})
	go old.Exclusive(func() {
		close(held)
		<-release
	})
	<-held

	// Действие
	second := env.dial(t, "?client_id=client-1")
	require.NoError(t, second.WriteJSON(map[string]any{"latitude": 37.3352, "longitude": -121.8811}))
	require.Eventually(t, func() bool {
		current, err := env.registry.Get("client-1")
		return err == nil && current != old
	}, 2*time.Second, 5*time.Millisecond)

	// Проверки
	select {
	case <-reset:
		t.Fatal("alert cache was reset while the previous session was still being evaluated")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-reset:
	case <-time.After(2 * time.Second):
		t.Fatal("alert cache was not reset after the previous session finished")
	}
	assert.True(t, old.Closed())
}

func TestAlertSocket_DuplicateReject(t *testing.T) {
	cfg := testConfig()
	cfg.DuplicatePolicy = config.DuplicateReject
	env := newTestHandler(t, cfg)

	env.service.EXPECT().Evaluate(gomock.Any(), "client-1").Return(nil).Times(1)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	first := env.dial(t, "?client_id=client-1")
	require.NoError(t, first.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	require.Eventually(t, func() bool { return env.registry.Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	original, err := env.registry.Get("client-1")
	require.NoError(t, err)

	second := env.dial(t, "?client_id=client-1")
	require.NoError(t, second.WriteJSON(map[string]any{"latitude": 37.3352, "longitude": -121.8811}))

	expectCloseCode(t, second, websocket.ClosePolicyViolation)
	current, err := env.registry.Get("client-1")
	require.NoError(t, err)
	assert.Same(t, original, current)
	assert.False(t, original.Closed())
}

func TestAlertSocket_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.WSMessageRate = 0.001
	cfg.WSMessageBurst = 1
	env := newTestHandler(t, cfg)

	env.service.EXPECT().Evaluate(gomock.Any(), "client-1").Return(nil).Times(1)
	env.service.EXPECT().ResetClient("client-1").AnyTimes()

	conn := env.dial(t, "?client_id=client-1")
	require.NoError(t, conn.WriteJSON(map[string]any{"latitude": 37.42, "longitude": -122.08}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "update_location", "latitude": 0, "longitude": 0}))

	msg := readPlain(t, conn)
	assert.Equal(t, msgRateLimited, msg.Message)

	c, err := env.registry.Get("client-1")
	require.NoError(t, err)
	assert.Equal(t, 37.42, c.Location().Latitude)
}

// nopTransport - транспорт, который ничего не делает
type nopTransport struct{}

func (nopTransport) WriteJSON(any) error              { return nil }
func (nopTransport) SetWriteDeadline(time.Time) error { return nil }
func (nopTransport) Close() error                     { return nil }
