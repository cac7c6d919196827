package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	// DataDir holds settings presets under presets/.
	DataDir string
	// WorldSettings is an optional settings file used for new sessions
	// that do not name a preset.
	WorldSettings string
	// SearchBudget caps predicate evaluations per missing-item search.
	SearchBudget int
	// SessionTTL is how long an idle session survives in storage.
	SessionTTL time.Duration

	// APIBaseURL is where the console and test tools reach the API.
	APIBaseURL string
	// WorkerID names this worker in lock ownership and logs.
	WorkerID string
}

func Load() (*Config, error) {
	budget, err := strconv.Atoi(getEnv("SEARCH_BUDGET", "20000"))
	if err != nil || budget <= 0 {
		return nil, fmt.Errorf("SEARCH_BUDGET must be a positive integer, got %q", os.Getenv("SEARCH_BUDGET"))
	}
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", os.Getenv("SESSION_TTL"))
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		WorldSettings: os.Getenv("WORLD_SETTINGS"),
		SearchBudget:  budget,
		SessionTTL:    ttl,
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		WorkerID:      os.Getenv("WORKER_ID"),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
