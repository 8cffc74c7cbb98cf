// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 3100).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// Redis holds Redis connection settings for the session store.
	Redis RedisConfig

	// Session holds local session settings.
	Session SessionConfig

	// Upstream holds the authentication/chat backend settings.
	Upstream UpstreamConfig
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// SessionConfig holds local session settings.
type SessionConfig struct {
	// TTL is how long a browser session lasts before expiring.
	TTL time.Duration
}

// UpstreamConfig holds the upstream backend connection settings.
type UpstreamConfig struct {
	// BaseURL is the root of the authentication/chat backend.
	BaseURL string

	// Timeout bounds each relayed call. The upstream protocol has no
	// retries, so a single slow call surfaces to the user after this long.
	Timeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		Port:    getEnvInt("PORT", 3100),
		BaseURL: getEnv("BASE_URL", "http://localhost:3100"),

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},

		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_URL", "http://localhost:4550"),
			Timeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "10s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
