package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/wanomaly/weather-anomaly/internal/api/http"
	"github.com/wanomaly/weather-anomaly/internal/config"
	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/scheduler"
	"github.com/wanomaly/weather-anomaly/internal/season"
	"github.com/wanomaly/weather-anomaly/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound weather calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory dataset store with bounded retention.
	store := dataset.NewStore(cfg.MaxDatasets)

	// Live fetcher: OpenWeatherMap client wrapped in the configured strategy.
	client := weather.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey)
	fetcher := weather.NewFetcher(cfg.FetchMode, client)

	clock := season.SystemClock{}

	// Background monitor for configured cities, if any.
	if cfg.OpenWeatherAPIKey != "" {
		monitor := scheduler.New(cfg.WatchCities, cfg.FetchInterval, store, fetcher, clock)
		if err := monitor.Start(); err != nil {
			log.Fatalf("failed to start monitor: %v", err)
		}
		defer monitor.Stop()
	} else {
		log.Println("INFO: no OpenWeatherMap API key configured; live monitoring disabled")
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-anomaly",
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-anomaly",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Handlers{
		Store:            store,
		Fetcher:          fetcher,
		Clock:            clock,
		APIKeyConfigured: cfg.OpenWeatherAPIKey != "",
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
