package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_alert_system/internal/repository"
	"github.com/shenikar/fire_alert_system/internal/seed"
	"github.com/shenikar/fire_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/fire_alert_system/pkg/redis"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo fires and evacuation zones (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := runMigrations(); err != nil {
			return err
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		defer dbpool.Close()

		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect to Redis: %w", err)
		}
		defer redisClient.Close()

		repo := repository.NewHazardRepository(dbpool, redisClient, cfg.HazardCacheTTL)
		res, err := seed.Run(ctx, repo, clockwork.NewRealClock(), log)
		if err != nil {
			return err
		}

		cmd.Printf("Seeded %d fires and %d evacuation zones\n", res.HazardsInserted, res.ZonesInserted)
		return nil
	},
}
