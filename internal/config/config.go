package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSessionTTL = 14 * 24 * time.Hour
)

// Config holds application configuration
type Config struct {
	// Runtime
	Env      string
	LogLevel string

	// Server
	Port string

	// Database
	DBDriver    string
	DatabaseURL string

	// Session
	SessionSecret string
	SessionTTL    time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present; real environment variables take precedence
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Port: getEnv("PORT", "5000"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", ""),
	}

	if config.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if config.DBDriver != DriverPostgres && config.DBDriver != DriverSQLite {
		return nil, errors.New("DB_DRIVER must be one of postgres, sqlite")
	}

	if config.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET not set, using insecure development secret")
		config.SessionSecret = "fallback-session-secret-for-dev-only"
	}

	// Parse session lifetime
	ttlStr := getEnv("SESSION_TTL", defaultSessionTTL.String())
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to %s\n", ttlStr, defaultSessionTTL)
		ttl = defaultSessionTTL
	}
	config.SessionTTL = ttl

	return config, nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
