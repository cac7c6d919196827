package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "DATA_DIR", "WORLD_SETTINGS", "SEARCH_BUDGET", "SESSION_TTL", "API_BASE_URL", "WORKER_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Empty(t, cfg.WorldSettings)
	assert.Equal(t, 20000, cfg.SearchBudget)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("SEARCH_BUDGET", "500")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("WORLD_SETTINGS", "/etc/smz3/settings.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 500, cfg.SearchBudget)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "/etc/smz3/settings.yaml", cfg.WorldSettings)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"budget not a number", "SEARCH_BUDGET", "lots"},
		{"budget zero", "SEARCH_BUDGET", "0"},
		{"ttl garbage", "SESSION_TTL", "forever"},
		{"ttl negative", "SESSION_TTL", "-1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SEARCH_BUDGET", "")
			t.Setenv("SESSION_TTL", "")
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLogLevel("Error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("chatty"))
}
