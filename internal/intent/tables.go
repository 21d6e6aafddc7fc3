// Package intent holds the static bilingual keyword tables the chatbot
// resolves messages against. Both locales live in the same tables and are
// matched without regard to their tag, so a message in either language can
// match any entry.
package intent

import (
	"strings"

	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/stringutil"
)

// Keyword is a locale-tagged keyword. Text is stored normalized.
type Keyword struct {
	Locale locale.Locale
	Text   string
}

// Keywords is an ordered keyword list.
type Keywords []Keyword

// Texts returns the normalized keyword texts in list order.
func (ks Keywords) Texts() []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Text
	}
	return out
}

// FilterLocale returns only the keywords tagged with l.
func (ks Keywords) FilterLocale(l locale.Locale) Keywords {
	out := make(Keywords, 0, len(ks))
	for _, k := range ks {
		if k.Locale == l {
			out = append(out, k)
		}
	}
	return out
}

// Match returns the first keyword contained in the normalized text.
func (ks Keywords) Match(text string) (Keyword, bool) {
	for _, k := range ks {
		if k.Text != "" && strings.Contains(text, k.Text) {
			return k, true
		}
	}
	return Keyword{}, false
}

// Entry is one FAQ row: any of Keywords (normalized) triggers Answer.
type Entry struct {
	Locale   locale.Locale
	Keywords []string
	Answer   string
}

// FAQ is an ordered FAQ table. Lookup is first-match in declared order.
type FAQ []Entry

// FirstMatch returns the first entry with any keyword contained in text.
func (f FAQ) FirstMatch(text string) (Entry, bool) {
	for _, e := range f {
		if _, ok := stringutil.ContainsAny(text, e.Keywords); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// FilterLocale returns only the entries tagged with l.
func (f FAQ) FilterLocale(l locale.Locale) FAQ {
	out := make(FAQ, 0, len(f))
	for _, e := range f {
		if e.Locale == l {
			out = append(out, e)
		}
	}
	return out
}

// Tables bundles every table the resolver consults.
type Tables struct {
	FAQ        FAQ
	Chapter    Keywords
	Storyboard Keywords
	Weather    Keywords
	Event      Keywords
}

// ForLocale returns tables restricted to one locale's entries.
// The default tables match across both locales.
func (t Tables) ForLocale(l locale.Locale) Tables {
	return Tables{
		FAQ:        t.FAQ.FilterLocale(l),
		Chapter:    t.Chapter.FilterLocale(l),
		Storyboard: t.Storyboard.FilterLocale(l),
		Weather:    t.Weather.FilterLocale(l),
		Event:      t.Event.FilterLocale(l),
	}
}

func tag(l locale.Locale, words ...string) Keywords {
	out := make(Keywords, len(words))
	for i, w := range words {
		out[i] = Keyword{Locale: l, Text: stringutil.Normalize(w)}
	}
	return out
}

func entry(l locale.Locale, answer string, keywords ...string) Entry {
	return Entry{Locale: l, Keywords: stringutil.NormalizeAll(keywords), Answer: answer}
}

func concat(lists ...Keywords) Keywords {
	var out Keywords
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
