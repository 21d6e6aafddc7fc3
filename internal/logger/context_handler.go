package logger

import (
	"context"
	"log/slog"

	"github.com/inculture/skopelos-chatbot/internal/ctxutil"
)

// ContextHandler adds the request_id and locale stored in the record's
// context to every record before passing it on.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	tr := ctxutil.Tracing(ctx)
	if tr.RequestID != "" {
		r.AddAttrs(slog.String("request_id", tr.RequestID))
	}
	if tr.Locale != "" {
		r.AddAttrs(slog.String("locale", tr.Locale))
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
