package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "arena.db", cfg.SQLitePath)
	assert.Zero(t, cfg.RunTTL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ARENA_LOG_LEVEL", "debug")
	t.Setenv("ARENA_STORE", "redis")
	t.Setenv("ARENA_REDIS_ADDR", "cache:6380")
	t.Setenv("ARENA_RUN_TTL", "72h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 72*time.Hour, cfg.RunTTL)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown store", "ARENA_STORE", "postgres"},
		{"unknown level", "ARENA_LOG_LEVEL", "loud"},
		{"negative ttl", "ARENA_RUN_TTL", "-1h"},
		{"bad duration", "ARENA_HTTP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfiguration(err), "got %v", err)
		})
	}
}

func TestValidate_BackendPaths(t *testing.T) {
	cfg := &config.Config{LogLevel: "info", Store: config.StoreSQLite}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARENA_SQLITE_PATH")

	cfg = &config.Config{LogLevel: "warn", Store: config.StoreRedis, RedisAddr: "redis:6379"}
	assert.NoError(t, cfg.Validate())
}
