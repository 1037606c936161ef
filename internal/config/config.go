package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Google AI Studio Configuration
	GoogleAPIKey        string
	GoogleModel         string
	GoogleFallbackModel string
	GoogleMaxTokens     int
	GeminiTimeout       time.Duration
	GeminiRequestsPerSec float64

	// Attio CRM Configuration
	AttioAPIKey  string
	AttioBaseURL string
	AttioListID  string
	AttioTimeout time.Duration

	// Shared retry policy for both external backends
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration

	// Duplicate-message guard (empty RedisAddr disables it)
	RedisAddr     string
	RedisPassword string
	DedupeTTL     time.Duration

	// Submission audit log (empty DatabaseURL disables it)
	DatabaseURL string

	// Company website lookup before company submission
	DomainLookupEnabled bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		GoogleAPIKey:         getEnv("GOOGLE_API_KEY", ""),
		GoogleModel:          getEnv("GOOGLE_MODEL", "gemini-2.5-flash"),
		GoogleFallbackModel:  getEnv("GOOGLE_FALLBACK_MODEL", "gemini-2.5-flash-lite"),
		GoogleMaxTokens:      getEnvAsInt("GOOGLE_MAX_TOKENS", 1024),
		GeminiTimeout:        getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		GeminiRequestsPerSec: getEnvAsFloat("GEMINI_REQUESTS_PER_SEC", 1),
		AttioAPIKey:          getEnv("ATTIO_API_KEY", ""),
		AttioBaseURL:         getEnv("ATTIO_API_URL", "https://api.attio.com/v2"),
		AttioListID:          getEnv("ATTIO_LIST_ID", ""),
		AttioTimeout:         getEnvAsDuration("ATTIO_TIMEOUT", 15*time.Second),
		RetryMaxAttempts:     getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelay:       getEnvAsDuration("RETRY_BASE_DELAY", time.Second),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		DedupeTTL:            getEnvAsDuration("DEDUPE_TTL", 10*time.Minute),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DomainLookupEnabled:  getEnvAsBool("DOMAIN_LOOKUP_ENABLED", true),
	}
}

// Validate reports missing required credentials. Optional integrations
// (Redis, Postgres, list membership) are allowed to be absent.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.GoogleAPIKey) == "" {
		missing = append(missing, "GOOGLE_API_KEY")
	}
	if strings.TrimSpace(c.AttioAPIKey) == "" {
		missing = append(missing, "ATTIO_API_KEY")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
