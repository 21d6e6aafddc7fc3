// Package config provides application configuration management.
// It loads settings from environment variables (and an optional .env file)
// and provides defaults for the server, upstream APIs and the chat panel.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/inculture/skopelos-chatbot/internal/content"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/weather"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServerName      string

	// Content API Configuration
	ContentBaseURL         string
	ContentTimeout         time.Duration
	ContentUserAgent       string        // Empty = random browser User-Agent per request
	ContentRefreshInterval time.Duration // 0 disables the periodic refresh

	// Weather API Configuration
	WeatherBaseURL  string
	WeatherAPIKey   string // Empty = weather answers report unavailable
	WeatherLocation string
	WeatherTimeout  time.Duration

	// Sentry Configuration
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Chat Configuration (embedded)
	Chat ChatConfig
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		ServerName:      getEnv(EnvServerName, "skopelos-chatbot"),

		// Content API Configuration
		ContentBaseURL:         getEnv(EnvContentBaseURL, content.DefaultBaseURL),
		ContentTimeout:         getDurationEnv(EnvContentTimeout, ContentRequest),
		ContentUserAgent:       getEnv(EnvContentUserAgent, ""),
		ContentRefreshInterval: getDurationEnv(EnvContentRefreshInterval, ContentRefreshInterval),

		// Weather API Configuration
		WeatherBaseURL:  getEnv(EnvWeatherBaseURL, weather.DefaultBaseURL),
		WeatherAPIKey:   getEnv(EnvWeatherAPIKey, ""),
		WeatherLocation: getEnv(EnvWeatherLocation, weather.DefaultLocation),
		WeatherTimeout:  getDurationEnv(EnvWeatherTimeout, WeatherRequest),

		// Sentry Configuration
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		// Better Stack Configuration
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		// Chat Configuration
		Chat: ChatConfig{
			DefaultLocale:    locale.Locale(getEnv(EnvDefaultLocale, string(locale.Default))),
			NavigationDelay:  getDurationEnv(EnvNavigationDelay, NavigationDelay),
			MaxMessageLength: getIntEnv(EnvMaxMessageLength, 500),
			NavigationBuffer: getIntEnv(EnvNavigationBuffer, 100),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if err := validateURL(c.ContentBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvContentBaseURL, err))
	}
	if c.ContentTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvContentTimeout, c.ContentTimeout))
	}
	if c.ContentRefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvContentRefreshInterval, c.ContentRefreshInterval))
	}
	if err := validateURL(c.WeatherBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvWeatherBaseURL, err))
	}
	if c.WeatherTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvWeatherTimeout, c.WeatherTimeout))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}
	if err := c.Chat.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chat config: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// WeatherEnabled reports whether a weather API key is configured.
func (c *Config) WeatherEnabled() bool {
	return c.WeatherAPIKey != ""
}

// MetricsAuthEnabled reports whether /metrics requires Basic Auth.
func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsPassword != ""
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
