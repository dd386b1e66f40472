// Package config loads process configuration from the environment.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Store selects the run archive backend
type Store string

// Supported archive backends
const (
	StoreMemory Store = "memory"
	StoreRedis  Store = "redis"
	StoreSQLite Store = "sqlite"
)

// Config is the process configuration
type Config struct {
	LogLevel     string        `env:"ARENA_LOG_LEVEL"      envDefault:"info"`
	Store        Store         `env:"ARENA_STORE"          envDefault:"memory"`
	RedisAddr    string        `env:"ARENA_REDIS_ADDR"     envDefault:"localhost:6379"`
	SQLitePath   string        `env:"ARENA_SQLITE_PATH"    envDefault:"arena.db"`
	RunTTL       time.Duration `env:"ARENA_RUN_TTL"        envDefault:"0s"`
	DND5eBaseURL string        `env:"ARENA_DND5E_BASE_URL" envDefault:"https://www.dnd5eapi.co/api/2014/"`
	HTTPTimeout  time.Duration `env:"ARENA_HTTP_TIMEOUT"   envDefault:"10s"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parsed values
func (c *Config) Validate() error {
	vb := errors.NewConfigValidationBuilder()

	if _, err := c.Level(); err != nil {
		vb.InvalidField("ARENA_LOG_LEVEL", errors.GetMessage(err))
	}
	errors.ValidateEnum("ARENA_STORE", string(c.Store),
		[]string{string(StoreMemory), string(StoreRedis), string(StoreSQLite)}, vb)
	if c.Store == StoreRedis {
		errors.ValidateRequired("ARENA_REDIS_ADDR", c.RedisAddr, vb)
	}
	if c.Store == StoreSQLite {
		errors.ValidateRequired("ARENA_SQLITE_PATH", c.SQLitePath, vb)
	}
	if c.RunTTL < 0 {
		vb.InvalidField("ARENA_RUN_TTL", "must not be negative")
	}
	if c.HTTPTimeout < 0 {
		vb.InvalidField("ARENA_HTTP_TIMEOUT", "must not be negative")
	}

	return vb.Build()
}

// Level maps the configured log level onto slog
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errors.InvalidConfigurationf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}
