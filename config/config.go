package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-jobtracker-backend/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Storage
	StorageDriver string
	DBUrl         string

	// Auth: HS256 shared secret, RS256 via JWKS, or both
	JWTSecret string
	JWKSURL   string

	FrontendURL string

	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitThreshold     int

	// DefaultTimezone applies when a request carries no X-Timezone header.
	DefaultTimezone *time.Location
	// EnforceContactOwnership rejects contact_id values owned by another user.
	EnforceContactOwnership bool
}

func LoadConfig() (*Config, error) {
	// .env only exists locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		AppEnv:                  getEnv("APP_ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		StorageDriver:           strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DBUrl:                   getEnv("DATABASE_URL", ""),
		JWTSecret:               getEnv("AUTH_JWT_SECRET", ""),
		JWKSURL:                 getEnv("AUTH_JWKS_URL", ""),
		FrontendURL:             strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		RedisURL:                getEnv("REDIS_URL", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:      getEnvInt("RATE_LIMIT_THRESHOLD", 120),
		EnforceContactOwnership: getEnvBool("ENFORCE_CONTACT_OWNERSHIP", true),
	}

	tzName := getEnv("DEFAULT_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", tzName, err)
	}
	cfg.DefaultTimezone = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		logger.Log.Warn("REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" && c.JWKSURL == "" {
		return fmt.Errorf("one of AUTH_JWT_SECRET or AUTH_JWKS_URL must be set")
	}
	if c.RateLimitWindowSeconds <= 0 || c.RateLimitThreshold <= 0 {
		return fmt.Errorf("rate limit window and threshold must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
