package content

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/logger"
	"github.com/inculture/skopelos-chatbot/internal/metrics"
	"github.com/inculture/skopelos-chatbot/internal/sentry"
)

// Fetcher loads the chapter catalog for a locale.
type Fetcher interface {
	GetMainChapters(ctx context.Context, l locale.Locale) ([]Chapter, error)
}

// Refresher fetches the catalog and installs it into an Index.
// Concurrent refreshes for the same locale share one upstream request.
type Refresher struct {
	fetcher Fetcher
	index   *Index
	group   singleflight.Group
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewRefresher creates a refresher. metrics may be nil.
func NewRefresher(fetcher Fetcher, index *Index, log *logger.Logger, m *metrics.Metrics) *Refresher {
	return &Refresher{
		fetcher: fetcher,
		index:   index,
		logger:  log.WithModule("content"),
		metrics: m,
	}
}

// Index returns the index the refresher installs into.
func (r *Refresher) Index() *Index {
	return r.index
}

// Refresh fetches the catalog for l and installs it unless a newer refresh
// already completed. On failure the previous snapshot stays in place.
// Returns ErrStaleResponse when the result was discarded.
func (r *Refresher) Refresh(ctx context.Context, l locale.Locale) error {
	seq := r.index.Begin()
	start := time.Now()

	v, err, shared := r.group.Do(l.String(), func() (any, error) {
		return r.fetcher.GetMainChapters(ctx, l)
	})
	if shared && r.metrics != nil {
		r.metrics.RecordSingleflightDedup("content")
	}
	duration := time.Since(start)

	log := r.logger.WithField("locale", l.String()).WithField("seq", seq)
	if err != nil {
		r.record(l, "error", duration)
		log.WithError(err).Warn("Content refresh failed, keeping previous snapshot")
		sentry.CaptureExceptionWithContext(ctx, err)
		return err
	}

	chapters, _ := v.([]Chapter)
	if !r.index.Commit(seq, l, chapters) {
		r.record(l, "stale", duration)
		log.Debug("Discarding stale content response")
		return fmt.Errorf("content seq %d: %w", seq, domerrors.ErrStaleResponse)
	}

	r.record(l, "success", duration)
	if r.metrics != nil {
		r.metrics.SetContentChapters(len(chapters))
	}
	log.WithField("chapters", len(chapters)).
		WithField("duration_ms", duration.Milliseconds()).
		Info("Content snapshot installed")
	return nil
}

func (r *Refresher) record(l locale.Locale, status string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordContentRefresh(l.String(), status, d.Seconds())
	}
}
