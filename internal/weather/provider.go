package weather

import (
	"context"
	"fmt"
	"sync"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/logger"
	"github.com/inculture/skopelos-chatbot/internal/metrics"
	"github.com/inculture/skopelos-chatbot/internal/sentry"
)

// Source fetches current conditions.
type Source interface {
	Current(ctx context.Context, l locale.Locale) (*Current, error)
}

// Provider holds the latest conditions. Like the content index, every
// refresh takes a sequence number and only the result of the latest issued
// refresh is kept.
// A failed refresh clears the conditions, so the chat reports weather as
// unavailable rather than answering with data for the wrong locale.
type Provider struct {
	source  Source
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	next    uint64
	current *Current
}

// NewProvider creates a provider. A nil source disables weather entirely.
func NewProvider(source Source, log *logger.Logger, m *metrics.Metrics) *Provider {
	return &Provider{
		source:  source,
		logger:  log.WithModule("weather"),
		metrics: m,
	}
}

// Enabled reports whether the provider has a source to fetch from.
func (p *Provider) Enabled() bool {
	return p.source != nil
}

// Current returns the latest conditions, or nil when unavailable.
func (p *Provider) Current() *Current {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Refresh fetches conditions for l.
func (p *Provider) Refresh(ctx context.Context, l locale.Locale) error {
	if p.source == nil {
		p.record("disabled")
		return fmt.Errorf("weather: %w", domerrors.ErrUnavailable)
	}

	p.mu.Lock()
	p.next++
	seq := p.next
	p.mu.Unlock()

	cur, err := p.source.Current(ctx, l)

	p.mu.Lock()
	stale := seq != p.next
	if !stale {
		p.current = cur // nil on failure
	}
	p.mu.Unlock()

	log := p.logger.WithField("locale", l.String()).WithField("seq", seq)
	switch {
	case stale:
		p.record("stale")
		log.Debug("Discarding stale weather response")
		return fmt.Errorf("weather seq %d: %w", seq, domerrors.ErrStaleResponse)
	case err != nil:
		p.record("error")
		log.WithError(err).Warn("Weather refresh failed")
		sentry.CaptureExceptionWithContext(ctx, err)
		return err
	}
	p.record("success")
	log.Debug("Weather updated")
	return nil
}

func (p *Provider) record(status string) {
	if p.metrics != nil {
		p.metrics.RecordWeatherRefresh(status)
	}
}
