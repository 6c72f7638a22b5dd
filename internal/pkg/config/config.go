package config

import (
	"fmt"
	"os"
	"time"
)

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StateConfig struct {
	// Dir is where the client-local key-value files live. Mirrors the
	// browser's local storage: token, profile, chat history.
	Dir string
	// RedisAddr, when set, replaces the file store with Redis.
	RedisAddr string
}

type CheckoutConfig struct {
	// Currency used for payment orders.
	Currency string
}

type Config struct {
	ServerPort  string
	MetricsPort string
	PprofPort   string
	Backend     BackendConfig
	State       StateConfig
	Checkout    CheckoutConfig
	Debug       bool
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnvOrDefault("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", ":9092"),
		PprofPort:   getEnvOrDefault("PPROF_PORT", ":6060"),
		Backend: BackendConfig{
			BaseURL: getEnvOrDefault("BACKEND_BASE_URL", "http://localhost:8000"),
			Timeout: timeout,
		},
		State: StateConfig{
			Dir:       getEnvOrDefault("STATE_DIR", ".voyagent"),
			RedisAddr: os.Getenv("STATE_REDIS_ADDR"),
		},
		Checkout: CheckoutConfig{
			Currency: getEnvOrDefault("CHECKOUT_CURRENCY", "INR"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
