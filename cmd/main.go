package main

import (
	"fmt"
	"os"

	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg           *config.Config
	log           *logrus.Logger
	migrationsURL string
)

var rootCmd = &cobra.Command{
	Use:   "fire-alert",
	Short: "Real-time fire geofencing and evacuation routing service",
	Long:  "Tracks websocket clients, pushes alerts about nearby active fires together with the nearest safe evacuation point.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Загрузка конфигурации
		c, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// Инициализация логгера
		log = logger.New(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsURL, "migrations", "file://migrations", "source URL of database migrations")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
