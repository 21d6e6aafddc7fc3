// Package config provides centralized timeout constants for the application.
//
// # Upstream APIs
//
// The content API serves the whole chapter catalog with storyboards in one
// response and can be slow on a cold cache; the weather API answers small
// JSON documents quickly. Neither call is retried, so a timeout simply keeps
// the previous content snapshot or marks the weather unavailable.
package config

import "time"

// HTTP server timeouts
const (
	// HTTPRead is the HTTP server read timeout. Chat requests are tiny JSON bodies.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the HTTP server write timeout.
	HTTPWrite = 15 * time.Second

	// HTTPIdle is the HTTP server idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second

	// HTTPReadHeader bounds reading request headers.
	HTTPReadHeader = 5 * time.Second
)

// Upstream API timeouts
const (
	// ContentRequest is the timeout for one content API call.
	ContentRequest = 30 * time.Second

	// WeatherRequest is the timeout for one weather API call.
	WeatherRequest = 10 * time.Second
)

// Chat timing
const (
	// NavigationDelay is how long chapter and event deep links wait, so the
	// user's turn is visible before the screen changes.
	NavigationDelay = 1200 * time.Millisecond
)

// Background job intervals
const (
	// ContentRefreshInterval is how often content and weather are reloaded
	// for the active locale.
	ContentRefreshInterval = 30 * time.Minute

	// InitialRefreshTimeout bounds the first refresh at startup.
	InitialRefreshTimeout = 45 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
