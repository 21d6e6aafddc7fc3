// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inculture/skopelos-chatbot/internal/bot"
	"github.com/inculture/skopelos-chatbot/internal/buildinfo"
	"github.com/inculture/skopelos-chatbot/internal/config"
	"github.com/inculture/skopelos-chatbot/internal/content"
	"github.com/inculture/skopelos-chatbot/internal/intent"
	"github.com/inculture/skopelos-chatbot/internal/logger"
	"github.com/inculture/skopelos-chatbot/internal/metrics"
	"github.com/inculture/skopelos-chatbot/internal/navigation"
	"github.com/inculture/skopelos-chatbot/internal/sentry"
	"github.com/inculture/skopelos-chatbot/internal/weather"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg       *config.Config
	logger    *logger.Logger
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
	index     *content.Index
	weather   *weather.Provider
	processor *bot.Processor
	recorder  *navigation.Recorder
	router    *gin.Engine
	server    *http.Server
	wg        sync.WaitGroup // Track background goroutines for graceful shutdown
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", cfg.ServerName)
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger so package-level slog.*Context() calls pick up
	// request_id and locale through the ContextHandler.
	slog.SetDefault(log.Logger)

	log.WithFields(map[string]any{
		"level":        log.GetLevel().String(),
		"better_stack": cfg.BetterStackToken != "",
		"version":      buildinfo.Release(),
	}).InfoContext(ctx, "Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
		ServerName:  cfg.ServerName,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	contentClient := content.NewClient(cfg.ContentBaseURL, cfg.ContentTimeout, cfg.ContentUserAgent)

	var weatherSource weather.Source
	if cfg.WeatherEnabled() {
		weatherSource = weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherLocation, cfg.WeatherTimeout)
	} else {
		log.Info("Weather API key not configured, weather answers disabled")
	}

	app := newApplication(cfg, log, m, registry, contentClient, weatherSource)
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: config.HTTPReadHeader,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.WithFields(map[string]any{
		"content_base_url": cfg.ContentBaseURL,
		"locale":           cfg.Chat.DefaultLocale.String(),
		"weather":          cfg.WeatherEnabled(),
	}).InfoContext(ctx, "Initialization complete")
	return app, nil
}

// newApplication wires the chat panel and router around the given
// upstream sources. A nil weatherSource disables weather answers.
func newApplication(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	fetcher content.Fetcher,
	weatherSource weather.Source,
) *Application {
	index := content.NewIndex()
	contentRefresher := content.NewRefresher(fetcher, index, log, m)

	provider := weather.NewProvider(weatherSource, log, m)

	resolver := bot.NewResolver(intent.Default)
	resolver.Use(bot.RecoveryMiddleware(log), bot.LoggingMiddleware(log))
	log.WithField("tiers", resolver.Names()).Debug("Resolver tiers registered")

	recorder := navigation.NewRecorder(cfg.Chat.NavigationBuffer)

	processor := bot.NewProcessor(bot.ProcessorConfig{
		Resolver:         resolver,
		Chapters:         index,
		Weather:          provider,
		Refreshers:       []bot.Refresher{contentRefresher, provider},
		Navigator:        recorder,
		NavigationDelay:  cfg.Chat.NavigationDelay,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		Locale:           cfg.Chat.DefaultLocale,
		Logger:           log,
		Metrics:          m,
	})

	app := &Application{
		cfg:       cfg,
		logger:    log,
		metrics:   m,
		registry:  registry,
		index:     index,
		weather:   provider,
		processor: processor,
		recorder:  recorder,
	}
	app.router = app.newRouter()
	return app
}

func (a *Application) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(a.logger))

	router.GET("/livez", a.livenessCheck)
	router.HEAD("/livez", a.livenessCheck)
	router.GET("/readyz", a.readinessCheck)
	router.HEAD("/readyz", a.readinessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsAuthEnabled(), a.cfg.MetricsUsername, a.cfg.MetricsPassword, a.metrics),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.GET("/chat", a.getChat)
	api.POST("/chat/messages", a.postMessage)
	api.POST("/chat/reset", a.resetChat)
	api.PUT("/locale", a.putLocale)
	api.GET("/navigation", a.getNavigation)
	api.GET("/content", a.getContent)

	return router
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// readinessCheck reports ready once a chapter catalog has been installed.
func (a *Application) readinessCheck(c *gin.Context) {
	snap := a.index.Snapshot()
	weatherStatus := gin.H{
		"enabled":   a.weather.Enabled(),
		"available": a.weather.Current() != nil,
	}

	if snap.Empty() {
		a.logger.Debug("Readiness check: content not loaded")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"reason":  "content not loaded",
			"weather": weatherStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"content": gin.H{
			"locale":     snap.Locale,
			"seq":        snap.Seq,
			"latest_seq": a.index.Latest(),
			"chapters":   len(snap.Chapters),
			"loaded_at":  snap.LoadedAt,
		},
		"weather": weatherStatus,
	})
}

// Handler returns the HTTP handler serving the API.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP and runs the content refresh job until SIGINT/SIGTERM
// or a listener failure. Background jobs are stopped before the server is
// shut down.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobsCtx, cancelJobs := context.WithCancel(ctx)
	a.wg.Go(func() { a.contentRefresh(jobsCtx) })

	serveErr := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("HTTP server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case runErr = <-serveErr:
		a.logger.WithError(runErr).Error("HTTP server failed")
	}

	cancelJobs()
	waitStart := time.Now()
	a.wg.Wait()
	a.logger.WithField("duration_ms", time.Since(waitStart).Milliseconds()).Info("Background jobs stopped")

	a.shutdown()
	if runErr != nil {
		return fmt.Errorf("serve: %w", runErr)
	}
	return nil
}

// shutdown stops the HTTP server and releases resources. It must run after
// background jobs have stopped.
func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	a.logger.Info("Closing conversation panel...")
	a.processor.Close()

	if sentry.IsEnabled() && !sentry.Flush(2*time.Second) {
		a.logger.Warn("Sentry flush timed out")
	}

	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	a.logger.Info("Shutdown complete")
}
