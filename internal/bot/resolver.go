package bot

import (
	"strings"

	"github.com/inculture/skopelos-chatbot/internal/i18n"
	"github.com/inculture/skopelos-chatbot/internal/intent"
	"github.com/inculture/skopelos-chatbot/internal/navigation"
	"github.com/inculture/skopelos-chatbot/internal/stringutil"
)

// NewResolver registers the resolution tiers in priority order:
// weather, chapter navigation, event navigation, storyboard navigation,
// FAQ, unknown.
func NewResolver(tables intent.Tables) *Registry {
	r := NewRegistry()
	r.Register(&weatherHandler{keywords: tables.Weather})
	r.Register(&chapterHandler{keywords: tables.Chapter})
	r.Register(&eventHandler{keywords: tables.Event})
	r.Register(&storyboardHandler{keywords: tables.Storyboard})
	r.Register(&faqHandler{faq: tables.FAQ})
	r.Register(unknownHandler{})
	return r
}

// weatherHandler answers with the latest conditions. It is terminal even
// when no conditions are available.
type weatherHandler struct {
	keywords intent.Keywords
}

func (h *weatherHandler) Name() string { return string(IntentWeather) }

func (h *weatherHandler) Match(req Request) (Result, bool) {
	kw, ok := h.keywords.Match(req.Text)
	if !ok {
		return Result{}, false
	}
	msgs := i18n.Get(req.Locale)
	reply := msgs.WeatherUnavailable
	if cur := req.Weather; cur != nil {
		reply = msgs.WeatherAnswer(cur.Condition.Text, cur.TempC, cur.FeelsLikeC)
	}
	return Result{Intent: IntentWeather, Reply: reply, Keyword: kw.Text}, true
}

// chapterHandler links to the first chapter whose title shares a chapter
// keyword with the message. Keywords are tried in list order; a keyword with
// no matching chapter moves on to the next keyword.
type chapterHandler struct {
	keywords intent.Keywords
}

func (h *chapterHandler) Name() string { return string(IntentChapterNavigation) }

func (h *chapterHandler) Match(req Request) (Result, bool) {
	for _, kw := range h.keywords {
		if !strings.Contains(req.Text, kw.Text) {
			continue
		}
		for _, ch := range req.Chapters {
			if strings.Contains(stringutil.Normalize(ch.Title), kw.Text) {
				target := navigation.ChapterTarget(ch.ID)
				return Result{Intent: IntentChapterNavigation, Target: &target, Keyword: kw.Text}, true
			}
		}
	}
	return Result{}, false
}

type eventHandler struct {
	keywords intent.Keywords
}

func (h *eventHandler) Name() string { return string(IntentEventNavigation) }

func (h *eventHandler) Match(req Request) (Result, bool) {
	kw, ok := h.keywords.Match(req.Text)
	if !ok {
		return Result{}, false
	}
	target := navigation.EventsTarget()
	return Result{Intent: IntentEventNavigation, Target: &target, Keyword: kw.Text}, true
}

// storyboardHandler links to the first storyboard whose title shares a
// storyboard keyword with the message, scanning chapters, then storyboards,
// then keywords, each in list order.
type storyboardHandler struct {
	keywords intent.Keywords
}

func (h *storyboardHandler) Name() string { return string(IntentStoryboardNavigation) }

func (h *storyboardHandler) Match(req Request) (Result, bool) {
	// Keywords absent from the message can never match; drop them up front.
	var present intent.Keywords
	for _, kw := range h.keywords {
		if strings.Contains(req.Text, kw.Text) {
			present = append(present, kw)
		}
	}
	if len(present) == 0 {
		return Result{}, false
	}

	for _, ch := range req.Chapters {
		for _, sb := range ch.Storyboards {
			title := stringutil.Normalize(sb.Title)
			for _, kw := range present {
				if strings.Contains(title, kw.Text) {
					target := navigation.StoryboardTarget(sb.ID, ch.ID)
					return Result{Intent: IntentStoryboardNavigation, Target: &target, Keyword: kw.Text}, true
				}
			}
		}
	}
	return Result{}, false
}

type faqHandler struct {
	faq intent.FAQ
}

func (h *faqHandler) Name() string { return string(IntentFAQ) }

func (h *faqHandler) Match(req Request) (Result, bool) {
	e, ok := h.faq.FirstMatch(req.Text)
	if !ok {
		return Result{}, false
	}
	return Result{Intent: IntentFAQ, Reply: e.Answer}, true
}

// unknownHandler always matches.
type unknownHandler struct{}

func (unknownHandler) Name() string { return string(IntentUnknown) }

func (unknownHandler) Match(req Request) (Result, bool) {
	return Result{Intent: IntentUnknown, Reply: i18n.Get(req.Locale).Unknown}, true
}
