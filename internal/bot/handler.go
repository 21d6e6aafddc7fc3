// Package bot resolves chat messages into intents and runs the submit path
// of the conversation panel. Each resolution tier implements Handler; the
// Registry evaluates them in priority order and the first match wins.
package bot

import (
	"github.com/inculture/skopelos-chatbot/internal/content"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/navigation"
	"github.com/inculture/skopelos-chatbot/internal/weather"
)

// Intent is the resolver's classification of a message.
type Intent string

const (
	IntentWeather              Intent = "weather"
	IntentChapterNavigation    Intent = "chapter_navigation"
	IntentEventNavigation      Intent = "event_navigation"
	IntentStoryboardNavigation Intent = "storyboard_navigation"
	IntentFAQ                  Intent = "faq"
	IntentUnknown              Intent = "unknown"
)

// Navigates reports whether the intent results in a deep link instead of a reply.
func (i Intent) Navigates() bool {
	switch i {
	case IntentChapterNavigation, IntentEventNavigation, IntentStoryboardNavigation:
		return true
	}
	return false
}

// Request is everything a resolution reads. The content and weather
// snapshots are passed in per call; handlers hold no shared state.
type Request struct {
	// Text is the normalized message.
	Text     string
	Locale   locale.Locale
	Chapters []content.Chapter
	Weather  *weather.Current
}

// Result is the outcome of resolving one message.
// Exactly one of Reply and Target is set.
type Result struct {
	Intent  Intent             `json:"intent"`
	Reply   string             `json:"reply,omitempty"`
	Target  *navigation.Target `json:"navigation,omitempty"`
	Keyword string             `json:"-"`
}

// Handler is one resolution tier.
type Handler interface {
	// Name identifies the tier in logs and metrics.
	Name() string

	// Match returns the tier's result if it applies to the request.
	// Match must not block or mutate anything.
	Match(req Request) (Result, bool)
}
