package intent

import "github.com/inculture/skopelos-chatbot/internal/locale"

// Default holds the built-in tables, normalized at package initialization.
// It is read-only for the lifetime of the process.
var Default = Tables{
	FAQ:        faq,
	Chapter:    chapterKeywords,
	Storyboard: storyboardKeywords,
	Weather:    weatherKeywords,
	Event:      eventKeywords,
}

var faq = FAQ{
	entry(locale.Greek, "Γεια σας! Πώς μπορώ να βοηθήσω;", "γεια"),
	entry(locale.Greek, "Δείτε τους προορισμούς στη σχετική σελίδα.", "προορισμοί", "προορισμούς", "προορισμο"),
	entry(locale.Greek, "Οι διαδρομές εμφανίζονται στη σελίδα Διαδρομές.", "διαδρομές", "διαδρομή"),
	entry(locale.Greek, "Οι οικισμοί εμφανίζονται στη σελίδα Οικισμοί.", "οικισμοι"),
	entry(locale.Greek, "Οι αρχαιολογικοί χώροι είναι διαθέσιμοι στην αντίστοιχη ενότητα.", "αρχαιολογικοι χωροι"),
	entry(locale.Greek, "Ανακαλύψτε διαδρομές πεζοπορίας στη σχετική ενότητα.", "πεζοπορία", "πεζοπορια"),
	entry(locale.Greek, "Η ποδηλασία περιλαμβάνεται στους θεματικούς προορισμούς.", "ποδηλασία", "ποδηλασια"),
	entry(locale.Greek, "Δείτε τη λαϊκή τέχνη στην αντίστοιχη σελίδα.", "λαϊκή τέχνη", "λαικη τεχνη"),
	entry(locale.Greek, "Οι εκκλησίες και τα μοναστήρια παρουσιάζονται αναλυτικά.", "εκκλησίες", "μοναστήρια"),
	entry(locale.Greek, "Δείτε τις θεματικές ενότητες στον ιστότοπο.", "θεματικες"),
	entry(locale.Greek, "Οι καλές τέχνες περιλαμβάνονται στους θεματικούς προορισμούς.", "καλες τεχνες"),

	entry(locale.English, "Hello! How can I help you?", "hello", "hi"),
	entry(locale.English, "See the destinations on the relevant page.", "destinations"),
	entry(locale.English, "Routes are shown on the Routes page.", "routes", "route"),
	entry(locale.English, "Villages are shown on the Villages page.", "villages"),
	entry(locale.English, "Archaeological sites are available in the corresponding section.", "archaeological sites"),
	entry(locale.English, "Discover hiking routes in the relevant section.", "hiking"),
	entry(locale.English, "Cycling is included in the thematic destinations.", "cycling"),
	entry(locale.English, "See folk art on the corresponding page.", "folk art"),
	entry(locale.English, "Churches and monasteries are presented in detail.", "churches", "monasteries"),
	entry(locale.English, "See the thematic sections on the website.", "themes", "thematic"),
	entry(locale.English, "Fine arts are included in the thematic destinations.", "fine arts"),
}

// chapterKeywords are generic stems that signal chapter navigation.
var chapterKeywords = concat(
	tag(locale.Greek, "προορισμ", "διαδρομ"),
	tag(locale.English, "destinat", "rout"),
)

// storyboardKeywords are specific stems matched against storyboard titles.
var storyboardKeywords = concat(
	tag(locale.Greek,
		"οικισμ", "αρχαιολογ", "λαικη τεχνη", "εκκλησ", "μοναστ", "θαλασσ", "παρκ",
		"καλες τεχν", "καλλιτεχν", "καλες", "παραλι", "πεζοπορ", "ποδηλασ", "θεματικ",
	),
	tag(locale.English,
		"village", "archaeolog", "folk art", "church", "monaster", "sea", "park",
		"fine art", "art", "beach", "hiking", "cycling", "thematic",
	),
)

var weatherKeywords = concat(
	tag(locale.Greek, "καιρός", "καιρο", "καιρι"),
	tag(locale.English, "weather"),
	tag(locale.Greek, "βρέχει", "βρεχει", "ζέστη"),
	tag(locale.English, "rain", "hot", "cold", "temperature"),
)

var eventKeywords = concat(
	tag(locale.Greek, "εκδηλ", "πανηγυρ"),
	tag(locale.English, "event"),
)
