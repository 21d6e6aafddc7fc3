// Package sentry provides Sentry SDK initialization and capture helpers.
// Upstream failures that the chat panel absorbs (content and weather
// refreshes) are still reported here so they are not lost.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/inculture/skopelos-chatbot/internal/ctxutil"
)

// Config holds Sentry configuration.
type Config struct {
	// DSN is the project DSN. Empty disables Sentry.
	DSN string

	// Environment identifies the deployment environment (e.g., "production", "staging").
	Environment string

	// Release identifies the application release version.
	Release string

	// ServerName is reported with every event.
	ServerName string

	// SampleRate controls error sampling (0.0-1.0, default 1.0 = 100%).
	SampleRate float64

	// Debug enables Sentry SDK debug logging.
	Debug bool
}

// Initialize sets up the Sentry SDK.
// If DSN is empty, Sentry is disabled and nil is returned.
func Initialize(cfg Config) error {
	if cfg.DSN == "" {
		return nil // Sentry disabled
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0 // Default to 100% sampling
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		ServerName:       cfg.ServerName,
		SampleRate:       sampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to be sent to the server.
// Returns true if all events were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureExceptionWithContext captures an error, tagging it with the
// request ID and locale carried by ctx.
func CaptureExceptionWithContext(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range Tags(ctx) {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

// Tags returns the event tags derived from ctx.
func Tags(ctx context.Context) map[string]string {
	tr := ctxutil.Tracing(ctx)
	tags := make(map[string]string, 2)
	if tr.RequestID != "" {
		tags["request_id"] = tr.RequestID
	}
	if tr.Locale != "" {
		tags["locale"] = tr.Locale
	}
	return tags
}
