package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all service settings, read from environment variables or a
// .env file.
type AppConfig struct {
	AppName     string
	Environment string
	LogLevel    string
	LogFormat   string
	Port        string

	// DataDir roots the raw raster assets and derived metric snapshots.
	DataDir string

	// Point-metric cache.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// EnableMetrics exposes the Prometheus endpoint.
	EnableMetrics bool

	// LoaderInterval controls how often derived snapshots are reloaded.
	LoaderInterval time.Duration

	// Ingestion planner.
	StacURL           string
	Mod13Q1Collection string

	// GeocoderAPIKey enables place-name resolution on the point endpoint.
	GeocoderAPIKey string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		AppName:     getenvDefault("APP_NAME", "forest-phenology-tracking-system"),
		Environment: getenvDefault("ENVIRONMENT", "development"),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("LOG_FORMAT", "text"),
		Port:        getenvDefault("PORT", "8080"),
		DataDir:     getenvDefault("DATA_DIR", "data"),

		CacheEnabled: getenvBool("CACHE_ENABLED", true),
		CacheMaxSize: getenvInt("CACHE_MAX_SIZE", 50000),

		EnableMetrics: getenvBool("ENABLE_METRICS", false),

		StacURL:           getenvDefault("STAC_URL", "https://planetarycomputer.microsoft.com/api/stac/v1"),
		Mod13Q1Collection: getenvDefault("MOD13Q1_COLLECTION", "modis-13Q1-061"),

		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
	}

	cacheTTLStr := getenvDefault("CACHE_TTL", "5m")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = cacheTTL

	intervalStr := getenvDefault("LOADER_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LOADER_INTERVAL: %w", err)
	}
	cfg.LoaderInterval = interval

	if cfg.CacheEnabled && cfg.CacheMaxSize <= 0 {
		return nil, fmt.Errorf("CACHE_MAX_SIZE must be positive, got %d", cfg.CacheMaxSize)
	}

	return cfg, nil
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

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}
