package config

import (
	"fmt"
	"log/slog"

	"invoice-dashboard-backend/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection and migrates the schema when enabled.
func InitDB(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	gormLevel := logger.Warn
	if level, _ := ParseLevel(cfg.LogLevel); level <= slog.LevelDebug {
		gormLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		log.Info("schema migrated")
	}
	return db, nil
}
