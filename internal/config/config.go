// Package config loads gantt settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "GANTT_"

type Config struct {
	// DB is a SQLite path or a postgres:// DSN.
	DB  string `env:"DB"`
	Log struct {
		Level    string `env:"LEVEL" envDefault:"warn"`
		UseCases bool   `env:"USE_CASES"`
	} `envPrefix:"LOG_"`
	Cache struct {
		RedisAddr     string        `env:"REDIS_ADDR"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
		RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
		TTL           time.Duration `env:"TTL" envDefault:"10m"`
	} `envPrefix:"CACHE_"`
	Events struct {
		AMQPURL  string `env:"AMQP_URL"`
		Exchange string `env:"EXCHANGE" envDefault:"gantt.schedule"`
	} `envPrefix:"EVENTS_"`
	Copy struct {
		StripResources     bool `env:"STRIP_RESOURCES"`
		HonorRelationships bool `env:"HONOR_RELATIONSHIPS"`
	}
}

// Load reads .env if present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom parses settings from vars alone, ignoring the process
// environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, fmt.Errorf("parsing config: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DB = filepath.Join(home, ".gantt", "gantt.db")
	}
	return cfg, nil
}

// LogLevel maps Log.Level to a slog level, defaulting to warn.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// CacheEnabled reports whether a Redis cache is configured.
func (c *Config) CacheEnabled() bool { return c.Cache.RedisAddr != "" }

// EventsEnabled reports whether a RabbitMQ publisher is configured.
func (c *Config) EventsEnabled() bool { return c.Events.AMQPURL != "" }
