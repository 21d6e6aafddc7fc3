// Package stringutil provides the text normalization used for keyword matching.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block (U+0300–U+036F).
var combiningDiacritics = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

var apostrophes = runes.Predicate(func(r rune) bool {
	return r == '\'' || r == '’'
})

// Normalize canonicalizes text for locale-insensitive keyword matching.
// It lower-cases, applies canonical decomposition (NFD), strips combining
// diacritical marks and removes apostrophes. The result stays decomposed.
//
// Normalize is idempotent and the same function must be applied to both
// keywords and user input before comparing them.
//
// Example:
//
//	Normalize("Βρέχει")    // "βρεχει"
//	Normalize("Λαϊκή Τέχνη") // "λαικη τεχνη"
//	Normalize("Folk's Art")  // "folks art"
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers and chains keep state, so build one per call.
	t := transform.Chain(
		cases.Lower(language.Und),
		norm.NFD,
		runes.Remove(combiningDiacritics),
		runes.Remove(apostrophes),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable for invalid UTF-8; fall back to a lossy best effort.
		return strings.ToLower(s)
	}
	return out
}

// NormalizeAll returns the normalized form of every keyword, preserving order.
func NormalizeAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = Normalize(k)
	}
	return out
}

// ContainsAny returns the first keyword (in list order) that occurs in text.
// Both text and keywords are expected to be normalized already.
// Empty keywords never match.
func ContainsAny(text string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
