package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/stringutil"
)

func TestDefault_KeywordsAreNormalized(t *testing.T) {
	lists := map[string]Keywords{
		"chapter":    Default.Chapter,
		"storyboard": Default.Storyboard,
		"weather":    Default.Weather,
		"event":      Default.Event,
	}
	for name, ks := range lists {
		for _, k := range ks {
			assert.Equal(t, stringutil.Normalize(k.Text), k.Text, "%s keyword %q not normalized", name, k.Text)
		}
	}
	for _, e := range Default.FAQ {
		for _, k := range e.Keywords {
			assert.Equal(t, stringutil.Normalize(k), k, "faq keyword %q not normalized", k)
		}
	}
}

func TestDefault_Sizes(t *testing.T) {
	assert.Len(t, Default.FAQ, 22)
	assert.Len(t, Default.Chapter, 4)
	assert.Len(t, Default.Storyboard, 27)
	assert.Len(t, Default.Weather, 11)
	assert.Len(t, Default.Event, 3)
}

func TestFAQ_FirstMatch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		answer string
	}{
		{"Greek greeting", "γεια σου", "Γεια σας! Πώς μπορώ να βοηθήσω;"},
		{"Accented keyword matches plain input", "πεζοπορια στο νησι", "Ανακαλύψτε διαδρομές πεζοπορίας στη σχετική ενότητα."},
		{"English entry", "tell me about cycling", "Cycling is included in the thematic destinations."},
		{"Multi-word keyword", "any folk art here", "See folk art on the corresponding page."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Default.FAQ.FirstMatch(stringutil.Normalize(tt.text))
			require.True(t, ok)
			assert.Equal(t, tt.answer, e.Answer)
		})
	}
}

func TestFAQ_FirstMatchDeclaredOrder(t *testing.T) {
	faq := FAQ{
		entry(locale.English, "first", "shared"),
		entry(locale.English, "second", "shared", "other"),
	}
	e, ok := faq.FirstMatch("a shared word")
	require.True(t, ok)
	assert.Equal(t, "first", e.Answer)

	e, ok = faq.FirstMatch("other")
	require.True(t, ok)
	assert.Equal(t, "second", e.Answer)
}

func TestFAQ_NoMatch(t *testing.T) {
	_, ok := Default.FAQ.FirstMatch("asdkjasd")
	assert.False(t, ok)
}

func TestKeywords_Match(t *testing.T) {
	k, ok := Default.Weather.Match(stringutil.Normalize("Καλημέρα, τι καιρό έχει;"))
	require.True(t, ok)
	assert.Equal(t, "καιρο", k.Text)
	assert.Equal(t, locale.Greek, k.Locale)

	_, ok = Default.Weather.Match("hello")
	assert.False(t, ok)
}

func TestTables_ForLocale(t *testing.T) {
	en := Default.ForLocale(locale.English)
	for _, k := range en.Storyboard {
		assert.Equal(t, locale.English, k.Locale)
	}
	assert.Len(t, en.FAQ, 11)
	assert.Equal(t, []string{"destinat", "rout"}, en.Chapter.Texts())

	el := Default.ForLocale(locale.Greek)
	assert.Equal(t, []string{"εκδηλ", "πανηγυρ"}, el.Event.Texts())
}
