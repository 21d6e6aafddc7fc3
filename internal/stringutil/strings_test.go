package stringutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"ASCII lower-cased", "Hiking", "hiking"},
		{"Greek tonos stripped", "Βρέχει", "βρεχει"},
		{"Greek dialytika stripped", "Λαϊκή Τέχνη", "λαικη τεχνη"},
		{"Latin accents stripped", "Café Crème", "cafe creme"},
		{"ASCII apostrophe removed", "don't", "dont"},
		{"Typographic apostrophe removed", "don’t", "dont"},
		{"Punctuation kept", "Καλημέρα, τι καιρό έχει;", "καλημερα, τι καιρο εχει;"},
		{"Final sigma", "ΠΡΟΟΡΙΣΜΟΣ", "προορισμος"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Βρέχει",
		"Αρχαιολογικοί Χώροι",
		"Ποδηλασία & Πεζοπορία",
		"Fine Arts’ Week",
		"ÅNGSTRÖM",
		"already normal",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_DiacriticInsensitive(t *testing.T) {
	if Normalize("Βρέχει") != Normalize("βρεχει") {
		t.Error("expected accented and plain forms to normalize equally")
	}
	if Normalize("ΚΑΙΡΌΣ") != Normalize("καιρος") {
		t.Error("expected upper-case accented form to match plain lower-case")
	}
}

func TestContainsAny(t *testing.T) {
	keywords := []string{"καιρο", "weather", "rain"}

	tests := []struct {
		name    string
		text    string
		want    string
		wantHit bool
	}{
		{"First keyword", "τι καιρο κανει", "καιρο", true},
		{"Later keyword", "will it rain", "rain", true},
		{"List order wins", "weather and rain", "weather", true},
		{"No match", "hello", "", false},
		{"Empty text", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ContainsAny(tt.text, keywords)
			if ok != tt.wantHit || got != tt.want {
				t.Errorf("ContainsAny(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantHit)
			}
		})
	}
}

func TestContainsAny_IgnoresEmptyKeyword(t *testing.T) {
	if _, ok := ContainsAny("anything", []string{""}); ok {
		t.Error("empty keyword must not match")
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" a ", false},
		{"γεια", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Καιρός", "Weather"})
	if len(got) != 2 || got[0] != "καιρος" || got[1] != "weather" {
		t.Errorf("NormalizeAll() = %v", got)
	}
}
