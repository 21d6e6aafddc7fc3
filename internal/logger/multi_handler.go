package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// MultiHandler sends every record to several sinks, typically stdout and
// Better Stack. Each sink applies its own level.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler builds a fan-out over the non-nil handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	m := &MultiHandler{}
	for _, h := range handlers {
		if h != nil {
			m.sinks = append(m.sinks, h)
		}
	}
	return m
}

// Len returns the number of sinks.
func (m *MultiHandler) Len() int {
	return len(m.sinks)
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.sinks {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes r to every sink enabled at its level. A failing sink does
// not stop the others; failures are joined.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for i, h := range m.sinks {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		rec := r
		if len(m.sinks) > 1 {
			rec = r.Clone()
		}
		if err := h.Handle(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("log sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	next := &MultiHandler{sinks: make([]slog.Handler, len(m.sinks))}
	for i, h := range m.sinks {
		next.sinks[i] = fn(h)
	}
	return next
}
