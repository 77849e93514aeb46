package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// FetchMode selects the live-fetch strategy: "sync" (blocking) or
	// "async" (single awaited goroutine). The two are interchangeable.
	FetchMode string

	// HTTPTimeout bounds every outbound weather call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often the monitor job re-checks WatchCities.
	FetchInterval time.Duration

	// WatchCities are periodically classified by the monitor job. Empty
	// disables the job.
	WatchCities []string

	// MaxDatasets bounds the in-memory dataset store.
	MaxDatasets int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.FetchMode = getenvDefault("FETCH_MODE", "sync")
	if cfg.FetchMode != "sync" && cfg.FetchMode != "async" {
		return nil, fmt.Errorf("invalid FETCH_MODE %q: must be sync or async", cfg.FetchMode)
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	cfg.WatchCities = splitCities(os.Getenv("WATCH_CITIES"))
	cfg.MaxDatasets = getenvInt("MAX_DATASETS", 16)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitCities(s string) []string {
	var cities []string
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
