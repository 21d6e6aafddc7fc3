package bot

import (
	"github.com/inculture/skopelos-chatbot/internal/i18n"
)

// Registry manages resolution tiers and dispatches a request to the first
// one that matches.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make([]Handler, 0),
	}
}

// Register adds a handler to the registry. Handlers are evaluated in
// registration order.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Resolve returns the result of the first matching handler. When nothing
// matches it returns the localized unknown answer, so resolution never fails.
func (r *Registry) Resolve(req Request) Result {
	for _, h := range r.handlers {
		if res, ok := h.Match(req); ok {
			return res
		}
	}
	return Result{Intent: IntentUnknown, Reply: i18n.Get(req.Locale).Unknown}
}

// Names returns the handler names in evaluation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.handlers))
	for i, h := range r.handlers {
		names[i] = h.Name()
	}
	return names
}
