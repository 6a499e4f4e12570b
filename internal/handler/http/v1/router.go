package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Вебсокет оповещений о пожарах
	api.GET("/ws/alert", h.alertSocket)

	// Статистика подключений, защищена ключом, если ключи заданы
	connections := api.Group("/connections")
	if len(h.cfg.APIKeys) > 0 {
		connections.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}
	connections.GET("/stats", h.getStats)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// RegisterMetrics публикует метрики Prometheus по пути /metrics
func RegisterMetrics(router *gin.Engine, metricsHandler http.Handler) {
	router.GET("/metrics", gin.WrapH(metricsHandler))
}

// RegisterSwagger добавляет маршрут для Swagger UI
func RegisterSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
