package bot

import (
	"runtime/debug"

	"github.com/inculture/skopelos-chatbot/internal/logger"
)

// Middleware decorates a resolution tier.
type Middleware func(Handler) Handler

// Use wraps every registered handler with mws. The first middleware is the
// outermost.
func (r *Registry) Use(mws ...Middleware) {
	for i, h := range r.handlers {
		for j := len(mws) - 1; j >= 0; j-- {
			h = mws[j](h)
		}
		r.handlers[i] = h
	}
}

// wrapped is a Handler whose Match is replaced but whose name is kept.
type wrapped struct {
	inner Handler
	match func(Request) (Result, bool)
}

func (w *wrapped) Name() string                     { return w.inner.Name() }
func (w *wrapped) Match(req Request) (Result, bool) { return w.match(req) }

// LoggingMiddleware logs which tier matched a message.
func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(h Handler) Handler {
		return &wrapped{inner: h, match: func(req Request) (Result, bool) {
			res, ok := h.Match(req)
			if ok {
				log.WithField("tier", h.Name()).
					WithField("text_length", len(req.Text)).
					WithField("chapters", len(req.Chapters)).
					Debug("Tier matched")
			}
			return res, ok
		}}
	}
}

// RecoveryMiddleware turns a panicking tier into a non-match so the next
// tier gets the message.
func RecoveryMiddleware(log *logger.Logger) Middleware {
	return func(h Handler) Handler {
		return &wrapped{inner: h, match: func(req Request) (res Result, ok bool) {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("tier", h.Name()).
						WithField("panic", r).
						WithField("stack", string(debug.Stack())).
						Error("Tier panicked")
					res, ok = Result{}, false
				}
			}()
			return h.Match(req)
		}}
	}
}
