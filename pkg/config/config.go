// Package config provides environment-based configuration for the hub console.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the console server.
type Config struct {
	// Hub API
	HubURL   string
	HubToken string

	// Database configuration (console-local tables only)
	DatabaseDSN string

	// Session authentication
	JWTSecret string
	JWTExpiry time.Duration

	// Server configuration
	ListenHost string
	ListenPort int

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration

	// Task polling
	Polling PollingConfig

	// Credential encryption
	Credentials CredentialsConfig

	// Logging
	LogLevel string
	LogJSON  bool
}

// PollingConfig holds the task polling intervals. Modal-blocking waits use
// the short interval; passive detail refreshes use the long one.
type PollingConfig struct {
	ModalInterval   time.Duration
	PassiveInterval time.Duration
}

// CredentialsConfig holds the age key pair used to encrypt stored hub
// credentials at rest.
type CredentialsConfig struct {
	// AgePublicKey encrypts (format: age1...).
	AgePublicKey string
	// AgePrivateKey decrypts (format: AGE-SECRET-KEY-1...).
	AgePrivateKey string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HubURL:          getEnv("HUB_URL", "http://localhost:5001/api/galaxy"),
		HubToken:        getEnv("HUB_TOKEN", ""),
		DatabaseDSN:     getEnv("DATABASE_URL", "postgres://localhost:5432/hubconsole?sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiry:       getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		ListenHost:      getEnv("LISTEN_HOST", "0.0.0.0"),
		ListenPort:      getIntEnv("LISTEN_PORT", 8080),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		Polling: PollingConfig{
			ModalInterval:   getDurationEnv("POLL_MODAL_INTERVAL", 500*time.Millisecond),
			PassiveInterval: getDurationEnv("POLL_PASSIVE_INTERVAL", 10*time.Second),
		},
		Credentials: CredentialsConfig{
			AgePublicKey:  getEnv("CREDENTIALS_AGE_PUBLIC_KEY", ""),
			AgePrivateKey: getEnv("CREDENTIALS_AGE_PRIVATE_KEY", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getBoolEnv("LOG_JSON", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.HubURL == "" {
		return fmt.Errorf("HUB_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Polling.ModalInterval <= 0 || c.Polling.PassiveInterval <= 0 {
		return fmt.Errorf("polling intervals must be positive")
	}
	return nil
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.ListenPort)
}

// LoadWithDefaults loads configuration with defaults for development.
// It does not validate required fields, useful for testing.
func LoadWithDefaults() *Config {
	return &Config{
		HubURL:          getEnv("HUB_URL", "http://localhost:5001/api/galaxy"),
		DatabaseDSN:     getEnv("DATABASE_URL", "postgres://localhost:5432/hubconsole?sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", "development-secret-key-min-32-chars"),
		JWTExpiry:       getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		ListenHost:      getEnv("LISTEN_HOST", "0.0.0.0"),
		ListenPort:      getIntEnv("LISTEN_PORT", 8080),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		Polling: PollingConfig{
			ModalInterval:   500 * time.Millisecond,
			PassiveInterval: 10 * time.Second,
		},
		LogLevel: "info",
		LogJSON:  false,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
