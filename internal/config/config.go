package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config centralizes runtime settings for the API and background workers.
type Config struct {
	Port string

	// ReviewerToken guards the /v1/review surface. Empty disables auth,
	// which is only acceptable in local development.
	ReviewerToken string
	ReviewerEmail string

	DatabaseURL string
	SQLitePath  string

	MediaRoot string

	PublicOrigin string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	CatalogSourceURL       string
	CatalogRefreshInterval time.Duration

	WebhookNewApplicationURL string
	WebhookStatusUpdateURL   string
	NotifyQueueSize          int
	NotifyMaxAttempts        int

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins []string

	LogLevel string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		ReviewerToken: getEnv("REVIEWER_AUTH_TOKEN", ""),
		ReviewerEmail: getEnv("REVIEWER_EMAIL", "hr@oasis.com"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),

		MediaRoot: getEnv("MEDIA_ROOT", "data/media"),

		PublicOrigin: getEnv("PUBLIC_ORIGIN", "http://localhost:8080"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Minute),

		CatalogSourceURL:       getEnv("CATALOG_SOURCE_URL", ""),
		CatalogRefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute),

		WebhookNewApplicationURL: getEnv("WEBHOOK_NEW_APPLICATION_URL", ""),
		WebhookStatusUpdateURL:   getEnv("WEBHOOK_STATUS_UPDATE_URL", ""),
		NotifyQueueSize:          getEnvInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyMaxAttempts:        getEnvInt("NOTIFY_MAX_ATTEMPTS", 3),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
