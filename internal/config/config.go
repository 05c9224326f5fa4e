package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIBaseURL = "http://localhost:5000/api"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	// Remote API
	APIBaseURL     string
	RequestTimeout time.Duration

	// Local key-value storage (session token, insight cache, theme)
	StorageBackend string
	SQLiteDBPath   string
	RedisURL       string
	RedisKeyPrefix string
	// Memory backend bounds; zero means unbounded
	MemoryMaxKeys int
	MemoryTTL     time.Duration

	// Insight cache freshness window. Advisory: the analysis view always revalidates.
	InsightTTL time.Duration

	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL:     getEnv("FINTRACK_API_BASE_URL", getEnv("NEXT_PUBLIC_API_BASE_URL", DefaultAPIBaseURL)),
		RequestTimeout: getEnvDuration("FINTRACK_REQUEST_TIMEOUT", 30*time.Second),

		StorageBackend: getEnv("FINTRACK_STORAGE", BackendSQLite),
		SQLiteDBPath:   getEnv("FINTRACK_SQLITE_PATH", "./data/fintrack.db"),
		RedisURL:       getEnv("FINTRACK_REDIS_URL", "redis://localhost:6379/0"),
		RedisKeyPrefix: getEnv("FINTRACK_REDIS_PREFIX", "fintrack:"),
		MemoryMaxKeys:  getEnvInt("FINTRACK_MEMORY_MAX_KEYS", 0),
		MemoryTTL:      getEnvDuration("FINTRACK_MEMORY_TTL", 0),

		InsightTTL: getEnvDuration("FINTRACK_INSIGHT_TTL", 15*time.Minute),

		LogLevel: getEnv("FINTRACK_LOG_LEVEL", "warn"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate API base URL
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	} else if parsedURL.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.RequestTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must not be negative", c.RequestTimeout))
	} else if c.RequestTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at most 10 minutes", c.RequestTimeout))
	}

	// Validate storage backend
	validBackends := []string{BackendSQLite, BackendRedis, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StorageBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}

	if c.StorageBackend == BackendSQLite && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite storage")
	}

	if c.StorageBackend == BackendRedis {
		if parsedURL, err := url.Parse(c.RedisURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid Redis URL '%s': %v", c.RedisURL, err))
		} else if parsedURL.Scheme != "redis" && parsedURL.Scheme != "rediss" {
			errors = append(errors, fmt.Sprintf("invalid Redis URL scheme '%s': must be 'redis' or 'rediss'", parsedURL.Scheme))
		}
	}

	if c.MemoryMaxKeys < 0 {
		errors = append(errors, fmt.Sprintf("invalid memory max keys %d: must not be negative", c.MemoryMaxKeys))
	}
	if c.MemoryTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid memory TTL %v: must not be negative", c.MemoryTTL))
	}

	if c.InsightTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid insight TTL %v: must be positive", c.InsightTTL))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
