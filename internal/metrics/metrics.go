// Package metrics defines the Prometheus metrics exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	MessagesTotal            *prometheus.CounterVec
	ResolutionDurationSecond prometheus.Histogram
	TranscriptTurns          prometheus.Gauge

	// Content refresh metrics
	ContentRefreshTotal    *prometheus.CounterVec
	ContentRefreshDuration prometheus.Histogram
	ContentChapters        prometheus.Gauge
	SingleflightDedupTotal *prometheus.CounterVec

	// Weather metrics
	WeatherRefreshTotal *prometheus.CounterVec

	// Navigation metrics
	NavigationTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		MessagesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_chat_messages_total",
				Help: "Total number of user messages by resolved intent",
			},
			[]string{"intent"}, // weather, chapter_navigation, event_navigation, storyboard_navigation, faq, unknown
		),

		ResolutionDurationSecond: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skopelos_chat_resolution_duration_seconds",
				Help:    "Time spent resolving a single message",
				Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),

		TranscriptTurns: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "skopelos_chat_transcript_turns",
				Help: "Number of turns in the conversation transcript, greeting included",
			},
		),

		ContentRefreshTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_content_refresh_total",
				Help: "Total number of content snapshot refreshes by locale and status",
			},
			[]string{"locale", "status"}, // status: success, error, stale
		),

		ContentRefreshDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skopelos_content_refresh_duration_seconds",
				Help:    "Content API fetch duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),

		ContentChapters: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "skopelos_content_chapters",
				Help: "Number of chapters in the installed content snapshot",
			},
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_singleflight_dedup_total",
				Help: "Total number of deduplicated fetches (callers that shared an in-flight request)",
			},
			[]string{"module"}, // module: content
		),

		WeatherRefreshTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_weather_refresh_total",
				Help: "Total number of weather refreshes by status",
			},
			[]string{"status"}, // status: success, error, stale, disabled
		),

		NavigationTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_navigation_total",
				Help: "Total number of deep links by route and status",
			},
			[]string{"route", "status"}, // status: scheduled, dispatched, cancelled, dropped
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "skopelos_http_errors_total",
				Help: "Total HTTP errors by type and endpoint",
			},
			[]string{"error_type", "endpoint"}, // error_type: invalid_input, unsupported_locale
		),
	}

	return m
}

// RecordMessage records a resolved user message
func (m *Metrics) RecordMessage(intent string, duration float64) {
	m.MessagesTotal.WithLabelValues(intent).Inc()
	m.ResolutionDurationSecond.Observe(duration)
}

// SetTranscriptTurns updates the transcript length
func (m *Metrics) SetTranscriptTurns(n int) {
	m.TranscriptTurns.Set(float64(n))
}

// RecordContentRefresh records a content refresh outcome
func (m *Metrics) RecordContentRefresh(locale, status string, duration float64) {
	m.ContentRefreshTotal.WithLabelValues(locale, status).Inc()
	if duration > 0 {
		m.ContentRefreshDuration.Observe(duration)
	}
}

// SetContentChapters updates the installed chapter count
func (m *Metrics) SetContentChapters(n int) {
	m.ContentChapters.Set(float64(n))
}

// RecordSingleflightDedup records a deduplicated request
func (m *Metrics) RecordSingleflightDedup(module string) {
	m.SingleflightDedupTotal.WithLabelValues(module).Inc()
}

// RecordWeatherRefresh records a weather refresh outcome
func (m *Metrics) RecordWeatherRefresh(status string) {
	m.WeatherRefreshTotal.WithLabelValues(status).Inc()
}

// RecordNavigation records a deep link event
func (m *Metrics) RecordNavigation(route, status string) {
	m.NavigationTotal.WithLabelValues(route, status).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}
