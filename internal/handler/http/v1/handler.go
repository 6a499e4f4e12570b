package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/registry"
	"github.com/shenikar/fire_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	alertService service.AlertService
	registry     *registry.Registry
	metrics      *metrics.Metrics
	logger       *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
	upgrader     websocket.Upgrader
}

func NewHandler(alertService service.AlertService, reg *registry.Registry, m *metrics.Metrics, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		alertService: alertService,
		registry:     reg,
		metrics:      m,
		logger:       logger,
		validate:     validator.New(),
		cfg:          cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Мобильные клиенты не присылают Origin браузера
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// @Summary Get connection statistics
// @Description Get the number of currently registered websocket clients. Requires API key when API_KEYS is set.
// @Tags Connections
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /connections/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{ConnectedClients: h.registry.Len()})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
