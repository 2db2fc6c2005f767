package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcampos/vocadeck/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		StoreBaseURL:       "http://localhost:8080",
		StoreTimeoutSecond: 15,
		LogLevel:           "INFO",
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_StoreBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		valid   bool
	}{
		{name: "absolute http URL", baseURL: "http://localhost:9090", valid: true},
		{name: "absolute https URL", baseURL: "https://store.example.com", valid: true},
		{name: "empty", baseURL: "", valid: false},
		{name: "missing scheme", baseURL: "localhost:9090", valid: false},
		{name: "path only", baseURL: "/api/flashcards", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.StoreBaseURL = tt.baseURL

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "STORE_BASE_URL")
			}
		})
	}
}

func TestValidate_StoreTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.StoreTimeoutSecond = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_TIMEOUT_SECONDS")
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "INVALID"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "STORE_BASE_URL")
	assert.Contains(t, errStr, "STORE_TIMEOUT_SECONDS")
	assert.Contains(t, errStr, "LOG_LEVEL")
}

func TestStoreTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.StoreTimeoutSecond = 30
	assert.Equal(t, 30*time.Second, cfg.StoreTimeout())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("STORE_BASE_URL", "http://store.local:7000")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "http://store.local:7000", cfg.StoreBaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "STORE_BASE_URL", "STORE_TIMEOUT_SECONDS", "LOG_LEVEL"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			os.Unsetenv(key)
		}
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15, cfg.StoreTimeoutSecond)
	assert.Equal(t, "INFO", cfg.LogLevel)
}
