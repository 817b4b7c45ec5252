package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/repository/memory"
	"invoice-dashboard-backend/internal/routes"
	"invoice-dashboard-backend/internal/seed"
	"invoice-dashboard-backend/internal/services/dashboard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc := dashboard.NewDashboardService(store, logger, metrics.NewQueryMetrics(reg))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(logger))
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, svc, reg)

	logger.Info("starting server", "addr", cfg.ServerAddr, "backend", cfg.DataBackend)
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config, logger *slog.Logger) (dashboard.Store, error) {
	if cfg.DataBackend == config.BackendMemory {
		store := memory.NewStore()
		if cfg.SeedDir != "" {
			if _, err := seed.Run(context.Background(), cfg.SeedDir, store, logger); err != nil {
				return nil, err
			}
		}
		return store, nil
	}

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	return repository.NewStore(db), nil
}
