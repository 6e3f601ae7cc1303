package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds the application configuration, populated from environment
// variables and an optional .env file.
type Config struct {
	HTTPPort string
	LogLevel string

	// Durable slot settings. SlotKey names the single key-value entry the
	// incident collection is mirrored into, whatever the backend.
	StorageBackend string
	SlotKey        string
	SlotFilePath   string
	DatabaseURL    string

	// Redis settings (slot backend and alert queue).
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Geocoding collaborator.
	GeocoderBaseURL string
	GeocoderTimeout time.Duration

	// Target district.
	DistrictName string
	CountryName  string
	CountryCode  string
	BoundsMinLat float64
	BoundsMaxLat float64
	BoundsMinLon float64
	BoundsMaxLon float64

	// Initial map view handed to the display collaborator.
	MapCenterLat float64
	MapCenterLon float64
	MapZoom      int

	// Flood alert webhook.
	WebhookURL        string
	WebhookSecret     string
	WebhookTimeout    time.Duration
	WebhookMaxRetries int
	WebhookBaseDelay  time.Duration

	// API keys for authentication. Empty list disables auth.
	APIKeys []string
}

// LoadConfig reads configuration from the environment and the .env file.
// Defaults target Galle District, Sri Lanka.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		SlotKey:        getEnv("SLOT_KEY", "floodIncidents"),
		SlotFilePath:   getEnv("SLOT_FILE_PATH", "data/incidents.json"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderTimeout: getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),

		DistrictName: getEnv("DISTRICT_NAME", "Galle"),
		CountryName:  getEnv("COUNTRY_NAME", "Sri Lanka"),
		CountryCode:  getEnv("COUNTRY_CODE", "lk"),
		BoundsMinLat: getEnvAsFloat("BOUNDS_MIN_LAT", 5.93),
		BoundsMaxLat: getEnvAsFloat("BOUNDS_MAX_LAT", 6.40),
		BoundsMinLon: getEnvAsFloat("BOUNDS_MIN_LON", 79.96),
		BoundsMaxLon: getEnvAsFloat("BOUNDS_MAX_LON", 80.52),

		MapCenterLat: getEnvAsFloat("MAP_CENTER_LAT", 6.0535),
		MapCenterLon: getEnvAsFloat("MAP_CENTER_LON", 80.2210),
		MapZoom:      getEnvAsInt("MAP_ZOOM", 11),

		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND is postgres")
	}
	if cfg.BoundsMinLat >= cfg.BoundsMaxLat || cfg.BoundsMinLon >= cfg.BoundsMaxLon {
		return nil, fmt.Errorf("district bounds are inverted")
	}

	return cfg, nil
}

// getEnv returns the environment variable value or the default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
