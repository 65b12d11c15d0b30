package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/billyblackk/forest-phenology-tracking-system/internal/api/http"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/cache"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/config"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/geo"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/ingest"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/observability"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/phenology"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/scheduler"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// In-memory repository; a spatial-database backend will slot in behind
	// the same interface.
	repo := store.NewMemoryRepository()

	var pointCache phenology.PointCache
	if cfg.CacheEnabled {
		c, err := cache.NewTTL[string, phenology.Metric](cfg.CacheMaxSize, cfg.CacheTTL)
		if err != nil {
			logger.Error("invalid cache configuration", "error", err)
			os.Exit(1)
		}
		pointCache = c
	}

	svc := phenology.NewQueryService(repo, pointCache)

	// Load derived snapshots once at startup, then on the configured interval.
	loader := ingest.NewSnapshotLoader(cfg.DataDir, repo, logger, metrics)
	if n, err := loader.LoadAll(context.Background()); err != nil {
		logger.Warn("initial snapshot load failed", "error", err)
	} else {
		logger.Info("initial snapshot load complete", "metrics", n)
	}

	sched := scheduler.New(loader, cfg.LoaderInterval, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	var geocoder httpapi.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = geo.NewGoogleGeocoder(cfg.GeocoderAPIKey)
		logger.Info("place geocoding enabled")
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(httpapi.RequestLogger(logger))
	app.Use(httpapi.RequestMetrics(metrics))

	if cfg.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpapi.RegisterRoutes(app, svc, geocoder, metrics, cfg, logger)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()
	logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
