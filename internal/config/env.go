// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "SKOPELOS_PORT"
	EnvLogLevel        = "SKOPELOS_LOG_LEVEL"
	EnvShutdownTimeout = "SKOPELOS_SHUTDOWN_TIMEOUT"
	EnvServerName      = "SKOPELOS_SERVER_NAME"

	// Content API
	EnvContentBaseURL         = "SKOPELOS_CONTENT_BASE_URL"
	EnvContentTimeout         = "SKOPELOS_CONTENT_TIMEOUT"
	EnvContentUserAgent       = "SKOPELOS_CONTENT_USER_AGENT"
	EnvContentRefreshInterval = "SKOPELOS_CONTENT_REFRESH_INTERVAL"

	// Weather API
	EnvWeatherBaseURL  = "SKOPELOS_WEATHER_BASE_URL"
	EnvWeatherAPIKey   = "SKOPELOS_WEATHER_API_KEY"
	EnvWeatherLocation = "SKOPELOS_WEATHER_LOCATION"
	EnvWeatherTimeout  = "SKOPELOS_WEATHER_TIMEOUT"

	// Chat
	EnvDefaultLocale    = "SKOPELOS_DEFAULT_LOCALE"
	EnvNavigationDelay  = "SKOPELOS_NAVIGATION_DELAY"
	EnvMaxMessageLength = "SKOPELOS_MAX_MESSAGE_LENGTH"
	EnvNavigationBuffer = "SKOPELOS_NAVIGATION_BUFFER"

	// Sentry Feature
	EnvSentryDSN         = "SKOPELOS_SENTRY_DSN"
	EnvSentryEnvironment = "SKOPELOS_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SKOPELOS_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "SKOPELOS_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "SKOPELOS_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "SKOPELOS_METRICS_USERNAME"
	EnvMetricsPassword = "SKOPELOS_METRICS_PASSWORD"
)
