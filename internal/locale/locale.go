// Package locale defines the display locales supported by the guide.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
)

// Locale is a supported display language.
type Locale string

const (
	// Greek is the primary locale.
	Greek Locale = "el"
	// English is the secondary locale.
	English Locale = "en"
)

// Default is the locale used before the user picks one.
const Default = Greek

// All lists the supported locales, primary first.
var All = []Locale{Greek, English}

// Parse accepts "el", "en" and region-qualified tags such as "en-US".
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty tag", domerrors.ErrUnsupportedLocale)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domerrors.ErrUnsupportedLocale, s)
	}
	base, _ := tag.Base()
	switch base.String() {
	case string(Greek):
		return Greek, nil
	case string(English):
		return English, nil
	}
	return "", fmt.Errorf("%w: %q", domerrors.ErrUnsupportedLocale, s)
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

func (l Locale) String() string {
	return string(l)
}

// IsValid reports whether l is one of the supported locales.
func (l Locale) IsValid() bool {
	return l == Greek || l == English
}
