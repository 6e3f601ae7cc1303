package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.Equal(t, "floodIncidents", cfg.SlotKey)
	assert.Equal(t, "data/incidents.json", cfg.SlotFilePath)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.GeocoderBaseURL)
	assert.Equal(t, 10*time.Second, cfg.GeocoderTimeout)
	assert.Equal(t, "Galle", cfg.DistrictName)
	assert.Equal(t, "Sri Lanka", cfg.CountryName)
	assert.Equal(t, "lk", cfg.CountryCode)
	assert.InDelta(t, 5.93, cfg.BoundsMinLat, 1e-9)
	assert.InDelta(t, 6.40, cfg.BoundsMaxLat, 1e-9)
	assert.InDelta(t, 79.96, cfg.BoundsMinLon, 1e-9)
	assert.InDelta(t, 80.52, cfg.BoundsMaxLon, 1e-9)
	assert.Equal(t, 11, cfg.MapZoom)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadConfig_CustomEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("GEOCODER_TIMEOUT", "3s")
	t.Setenv("MAP_ZOOM", "13")
	t.Setenv("API_KEYS", "key-one, key-two")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 3*time.Second, cfg.GeocoderTimeout)
	assert.Equal(t, 13, cfg.MapZoom)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.APIKeys)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestLoadConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_InvertedBounds(t *testing.T) {
	t.Setenv("BOUNDS_MIN_LAT", "7.0")
	t.Setenv("BOUNDS_MAX_LAT", "6.0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounds")
}
