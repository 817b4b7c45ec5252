// Command seed imports customers.csv, invoices.csv and revenue.csv from
// SEED_DIR (or the first argument) into the configured postgres database.
package main

import (
	"context"
	"log/slog"
	"os"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/seed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.DataBackend != config.BackendPostgres {
		logger.Error("seed only writes to the postgres backend", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	dir := cfg.SeedDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if dir == "" {
		logger.Error("no seed directory: set SEED_DIR or pass it as an argument")
		os.Exit(1)
	}

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if _, err := seed.Run(context.Background(), dir, repository.NewStore(db), logger); err != nil {
		logger.Error("seed failed", "dir", dir, "error", err)
		os.Exit(1)
	}
}
