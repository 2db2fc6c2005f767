package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	StoreBaseURL       string
	StoreTimeoutSecond int
	LogLevel           string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:vocadeck.db"),
		StoreBaseURL:       envOr("STORE_BASE_URL", "http://localhost:8080"),
		StoreTimeoutSecond: envIntOr("STORE_TIMEOUT_SECONDS", 15),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
	}
}

// StoreTimeout returns the store client timeout as a duration.
func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutSecond) * time.Second
}

// Validate checks the configuration and returns an error describing every
// problem found, not just the first one.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.StoreBaseURL == "" {
		problems = append(problems, "STORE_BASE_URL cannot be empty")
	} else if u, err := url.Parse(c.StoreBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("STORE_BASE_URL %q is not an absolute URL", c.StoreBaseURL))
	}
	if c.StoreTimeoutSecond <= 0 {
		problems = append(problems, "STORE_TIMEOUT_SECONDS must be positive")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
