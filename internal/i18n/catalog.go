// Package i18n provides the localized strings shown in the chat panel.
package i18n

import (
	"fmt"
	"math"

	"github.com/inculture/skopelos-chatbot/internal/locale"
)

// Labels are the fixed UI strings around the transcript.
type Labels struct {
	BotSender   string `json:"botSender"`
	UserSender  string `json:"userSender"`
	Placeholder string `json:"placeholder"`
	Send        string `json:"send"`
	Close       string `json:"close"`
}

// Messages holds the bot replies and chips for one locale.
type Messages struct {
	Greeting           string
	Unknown            string
	WeatherUnavailable string
	// weatherFormat takes condition, rounded temperature and rounded feels-like.
	weatherFormat string
	QuickReplies  []string
	Labels        Labels
}

// WeatherAnswer formats the current-conditions reply.
func (m Messages) WeatherAnswer(condition string, tempC, feelsLikeC float64) string {
	return fmt.Sprintf(m.weatherFormat, condition, Round(tempC), Round(feelsLikeC))
}

// Round rounds half toward positive infinity, like JavaScript's Math.round.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

var catalog = map[locale.Locale]Messages{
	locale.Greek: {
		Greeting:           "Γεια σας! Κάντε μια ερώτηση ή επιλέξτε μία από τις παρακάτω επιλογές.",
		Unknown:            "Συγγνώμη, δεν γνωρίζω την απάντηση.",
		WeatherUnavailable: "Δεν μπορώ να ανακτήσω τον καιρό αυτή τη στιγμή.",
		weatherFormat:      "Ο καιρός στη Σκόπελο είναι %s, θερμοκρασία %d°C, αισθητή %d°C.",
		QuickReplies:       []string{"Γεια", "Προορισμοί", "Διαδρομές", "Εκδηλώσεις"},
		Labels: Labels{
			BotSender:   "Bot: ",
			UserSender:  "Εσείς: ",
			Placeholder: "Γράψτε εδώ...",
			Send:        "Send",
			Close:       "Κλείσιμο",
		},
	},
	locale.English: {
		Greeting:           "Hello! Ask a question or choose one of the options below.",
		Unknown:            "Sorry, I don't know the answer.",
		WeatherUnavailable: "I can't retrieve the weather right now.",
		weatherFormat:      "The weather in Skopelos is %s, temperature %d°C, feels like %d°C.",
		QuickReplies:       []string{"Hi", "Destinations", "Trails", "Events"},
		Labels: Labels{
			BotSender:   "Bot: ",
			UserSender:  "You: ",
			Placeholder: "Type here...",
			Send:        "Send",
			Close:       "Close",
		},
	},
}

// Fallback is used for locales without a catalog entry.
const Fallback = locale.English

// Get returns the messages for l, falling back to English.
func Get(l locale.Locale) Messages {
	if m, ok := catalog[l]; ok {
		return m
	}
	return catalog[Fallback]
}

// QuickReplies returns a copy of the chips for l.
func QuickReplies(l locale.Locale) []string {
	src := Get(l).QuickReplies
	out := make([]string, len(src))
	copy(out, src)
	return out
}
