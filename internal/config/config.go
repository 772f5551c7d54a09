package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	Destination         string
	DestinationPosition domain.Coordinates
	CountryCode         string

	ORSAPIKey        string
	ORSWalkingRoutes bool
	SNCFAPIKey       string
	RedisURL         string
	PricingPath      string

	LogLevel    string
	LogFormat   string
	LogFilePath string

	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv reads .env when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load builds a Config from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/lille.json"),
		Destination: Get("DESTINATION_CITY", "Lille"),
		CountryCode: Get("COUNTRY_CODE", "FR"),
		ORSAPIKey:   Get("ORS_API_KEY", ""),
		SNCFAPIKey:  Get("SNCF_API_KEY", ""),
		RedisURL:    Get("REDIS_URL", ""),
		PricingPath: Get("PRICING_PATH", ""),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "json"),
		LogFilePath: Get("LOG_FILE_PATH", ""),
	}

	var err error
	if cfg.DestinationPosition.Lat, err = getFloat("DESTINATION_LAT", 50.62); err != nil {
		return Config{}, err
	}
	if cfg.DestinationPosition.Lon, err = getFloat("DESTINATION_LON", 3.06); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 10); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ORSWalkingRoutes, err = getBool("ORS_WALKING_ROUTES", false); err != nil {
		return Config{}, err
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return Config{}, fmt.Errorf("config: rate limit must be positive, got rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}
