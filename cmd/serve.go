package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	_ "github.com/shenikar/fire_alert_system/docs"
	"github.com/shenikar/fire_alert_system/internal/alertcache"
	v1 "github.com/shenikar/fire_alert_system/internal/handler/http/v1"
	"github.com/shenikar/fire_alert_system/internal/metrics"
	"github.com/shenikar/fire_alert_system/internal/registry"
	"github.com/shenikar/fire_alert_system/internal/repository"
	"github.com/shenikar/fire_alert_system/internal/safepoint"
	"github.com/shenikar/fire_alert_system/internal/service"
	"github.com/shenikar/fire_alert_system/internal/webhook"
	"github.com/shenikar/fire_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/fire_alert_system/pkg/redis"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the websocket alert server, sweeper and webhook worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// @title Fire Alert System API
// @version 1.0
// @description Real-time fire geofencing and evacuation routing over websockets.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func serve(parent context.Context) error {
	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Запуск миграций
	if err := runMigrations(); err != nil {
		return err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	m := metrics.NewMetrics()
	clock := clockwork.NewRealClock()

	// Хранилище и снимок пожаров
	hazardRepo := repository.NewHazardRepository(dbpool, redisClient, cfg.HazardCacheTTL)
	feed := service.NewHazardFeed(hazardRepo, m, log)

	// Ядро оповещений
	reg := registry.New()
	cache := alertcache.New(cfg.RealertOnUpdate)
	resolver := safepoint.NewResolver(safepoint.DefaultFallbackPlaces(), cfg.FireExclusionKm, log)
	publisher := webhook.NewRedisAlertPublisher(redisClient)
	sweeper := service.NewSweeper(feed, reg, cache, resolver, publisher, m, log, clock, service.SweeperConfig{
		Interval:           cfg.SweepInterval,
		EvictOnSendFailure: cfg.EvictOnSendFailure,
	})
	worker := webhook.NewWorker(redisClient, log, cfg, m, clock)

	// Настройка Gin роутера
	handler := v1.NewHandler(sweeper, reg, m, log, cfg)
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	v1.RegisterMetrics(router, promhttp.Handler())

	// Добавление маршрута для Swagger UI
	v1.RegisterSwagger(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return sweeper.Run(gctx) })
	g.Go(func() error { return worker.Run(gctx) })

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)

		// Shutdown не закрывает перехваченные вебсокет-соединения
		reg.ForEach(func(c *registry.Client) {
			_ = c.Close()
		})
		if err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}
