package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 50000, cfg.CacheMaxSize)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.LoaderInterval)
	assert.False(t, cfg.EnableMetrics)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("LOADER_INTERVAL", "5m")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("CACHE_MAX_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.LoaderInterval)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, 100, cfg.CacheMaxSize)
}

func TestLoadInvalidDurations(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidCacheSize(t *testing.T) {
	t.Setenv("CACHE_MAX_SIZE", "-5")
	_, err := Load()
	assert.Error(t, err)
}
