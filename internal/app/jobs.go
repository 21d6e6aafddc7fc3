package app

import (
	"context"
	"time"

	"github.com/inculture/skopelos-chatbot/internal/config"
	"github.com/inculture/skopelos-chatbot/internal/ctxutil"
)

// contentRefresh loads content and weather for the active locale on
// startup, then on every ContentRefreshInterval until ctx is cancelled.
// A zero interval keeps only the startup load.
func (a *Application) contentRefresh(ctx context.Context) {
	a.logger.Debug("Content refresh job started")
	defer a.logger.Debug("Content refresh job stopped")

	initialCtx, initialCancel := context.WithTimeout(context.Background(), config.InitialRefreshTimeout)
	//nolint:contextcheck // Intentionally using independent context
	a.runContentRefresh(initialCtx)
	initialCancel()

	interval := a.cfg.ContentRefreshInterval
	if interval <= 0 {
		a.logger.Info("Periodic content refresh disabled")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Content refresh received shutdown signal")
			return
		case <-ticker.C:
			a.runContentRefresh(ctx)
		}
	}
}

func (a *Application) runContentRefresh(ctx context.Context) {
	start := time.Now()
	l := a.processor.Locale()
	ctx = ctxutil.WithLocale(ctx, l.String())

	// Refreshers log and report their own failures.
	if err := a.processor.Refresh(ctx); err != nil {
		a.logger.WithError(err).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WarnContext(ctx, "Content refresh finished with errors")
		return
	}

	snap := a.index.Snapshot()
	a.logger.WithField("chapters", len(snap.Chapters)).
		WithField("seq", snap.Seq).
		WithField("weather", a.weather.Current() != nil).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		InfoContext(ctx, "Content refresh completed")
}
