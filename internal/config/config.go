package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	DatabaseURL    string   `env:"DATABASE_URL"`
	ServerAddr     string   `env:"SERVER_ADDR" envDefault:":8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	AutoMigrate    bool     `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	DataBackend    string   `env:"DATA_BACKEND" envDefault:"postgres"`
	SeedDir        string   `env:"SEED_DIR"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid DATA_BACKEND %q: must be %s or %s", c.DataBackend, BackendPostgres, BackendMemory)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps LOG_LEVEL values onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
