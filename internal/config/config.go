package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/fire_alert_system/internal/models"
)

// DuplicatePolicy определяет поведение при повторном подключении клиента с тем же ID
type DuplicatePolicy string

const (
	// DuplicateReplace закрывает старое соединение и регистрирует новое
	DuplicateReplace DuplicatePolicy = "replace"
	// DuplicateReject закрывает новое соединение
	DuplicateReject DuplicatePolicy = "reject"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	HazardCacheTTL time.Duration `env:"HAZARD_CACHE_TTL" envDefault:"10s"`

	// Sweep Config
	SweepInterval       time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
	FireExclusionKm     float64       `env:"FIRE_EXCLUSION_KM" envDefault:"2.0"`
	DefaultRadiusMeters float64       `env:"DEFAULT_RADIUS_METERS" envDefault:"10"`
	RealertOnUpdate     bool          `env:"REALERT_ON_UPDATE" envDefault:"false"`
	EvictOnSendFailure  bool          `env:"EVICT_ON_SEND_FAILURE" envDefault:"true"`

	// WebSocket Config
	WSWriteTimeout  time.Duration   `env:"WS_WRITE_TIMEOUT" envDefault:"5s"`
	WSMessageRate   float64         `env:"WS_MESSAGE_RATE" envDefault:"5"`
	WSMessageBurst  int             `env:"WS_MESSAGE_BURST" envDefault:"10"`
	DuplicatePolicy DuplicatePolicy `env:"DUPLICATE_CLIENT_POLICY" envDefault:"replace"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for operational endpoints
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		HazardCacheTTL:      getEnvAsDuration("HAZARD_CACHE_TTL", 10*time.Second),
		SweepInterval:       getEnvAsDuration("SWEEP_INTERVAL", 30*time.Second),
		FireExclusionKm:     getEnvAsFloat("FIRE_EXCLUSION_KM", 2.0),
		DefaultRadiusMeters: getEnvAsFloat("DEFAULT_RADIUS_METERS", models.DefaultRadiusMeters),
		RealertOnUpdate:     getEnvAsBool("REALERT_ON_UPDATE", false),
		EvictOnSendFailure:  getEnvAsBool("EVICT_ON_SEND_FAILURE", true),
		WSWriteTimeout:      getEnvAsDuration("WS_WRITE_TIMEOUT", 5*time.Second),
		WSMessageRate:       getEnvAsFloat("WS_MESSAGE_RATE", 5),
		WSMessageBurst:      getEnvAsInt("WS_MESSAGE_BURST", 10),
		DuplicatePolicy:     DuplicatePolicy(strings.ToLower(getEnv("DUPLICATE_CLIENT_POLICY", string(DuplicateReplace)))),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:      getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:   getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:    getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений конфигурации
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.DefaultRadiusMeters <= 0 {
		return fmt.Errorf("DEFAULT_RADIUS_METERS must be positive, got %v", c.DefaultRadiusMeters)
	}
	if c.FireExclusionKm < 0 {
		return fmt.Errorf("FIRE_EXCLUSION_KM must not be negative, got %v", c.FireExclusionKm)
	}
	if c.WebhookTimeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %s", c.WebhookTimeout)
	}
	switch c.DuplicatePolicy {
	case DuplicateReplace, DuplicateReject:
	default:
		return fmt.Errorf("unknown DUPLICATE_CLIENT_POLICY %q", c.DuplicatePolicy)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
