package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLoginURI        = "https://login.salesforce.com"
	DefaultAPIVersion      = "v65.0"
	DefaultPluginName      = "chatter"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultMaxRetryElapsed = time.Minute
	DefaultLogLevel        = "info"
)

type Config struct {
	LoginURI        string
	ClientID        string
	ClientSecret    string
	APIVersion      string
	NetworkID       string
	PluginName      string
	HTTPTimeout     time.Duration
	MaxRetryElapsed time.Duration
	LogLevel        string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	httpTimeout, err := getDuration("SF_HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	maxRetryElapsed, err := getDuration("SF_MAX_RETRY_ELAPSED", DefaultMaxRetryElapsed)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LoginURI:        getEnv("SF_LOGIN_URI", DefaultLoginURI),
		ClientID:        os.Getenv("SF_CLIENT_ID"),
		ClientSecret:    os.Getenv("SF_CLIENT_SECRET"),
		APIVersion:      getEnv("SF_API_VERSION", DefaultAPIVersion),
		NetworkID:       os.Getenv("SF_NETWORK_ID"),
		PluginName:      getEnv("SF_PLUGIN_NAME", DefaultPluginName),
		HTTPTimeout:     httpTimeout,
		MaxRetryElapsed: maxRetryElapsed,
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LoginURI == "" {
		return fmt.Errorf("SF_LOGIN_URI is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("SF_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("SF_CLIENT_SECRET is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("SF_API_VERSION is required")
	}
	// NetworkID is optional, so we don't validate it
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
