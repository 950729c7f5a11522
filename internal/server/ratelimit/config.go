package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Rule is the rate limit for one endpoint. A trailing "/" in Path enables
// prefix matching; Limit <= 0 means unlimited.
type Rule struct {
	Path   string
	Method string
	Limit  int // requests per window
	Window time.Duration
	Burst  int // burst capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultConfig returns the built-in limiter configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules:           defaultRules(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Rules:           defaultRules(),
	}
}

// defaultRules tiers the endpoints: AI drafting and PDF export are
// expensive (browser/model round-trips), auth endpoints are brute-force
// targets, ordinary document writes are moderate.
func defaultRules() []Rule {
	return []Rule{
		{Path: "/resumes/", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},   // summary-suggestions
		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Hour, Burst: 10},
		{Path: "/resumes", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/resumes/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/resumes/", Method: "PATCH", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
