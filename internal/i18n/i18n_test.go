package i18n

import "testing"

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{"thai short", "th", LangTH},
		{"thai long", "th-TH", LangTH},
		{"thai word", "Thai", LangTH},
		{"english short", "en", LangEN},
		{"english long", "en-US", LangEN},
		{"unknown falls back to thai", "fr", LangTH},
		{"empty falls back to thai", "", LangTH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.lang)
			if got := GetLanguage(); got != tt.want {
				t.Errorf("GetLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestT_FallsBackToKey(t *testing.T) {
	Init(LangEN)
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("T() = %q, want the key itself", got)
	}
}

func TestT_EveryThaiKeyHasEnglish(t *testing.T) {
	Init(LangTH)
	for key := range messages[LangTH] {
		if _, ok := messages[LangEN][key]; !ok {
			t.Errorf("key %q missing from English catalog", key)
		}
	}
	for key := range messages[LangEN] {
		if _, ok := messages[LangTH][key]; !ok {
			t.Errorf("key %q missing from Thai catalog", key)
		}
	}
}

func TestSprintf(t *testing.T) {
	Init(LangEN)
	got := Sprintf("index.done", 7)
	want := "loaded 7 chunks"
	if got != want {
		t.Errorf("Sprintf() = %q, want %q", got, want)
	}
}

func TestIsLanguageSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"th", true},
		{"en", true},
		{"EN", true},
		{"fr", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLanguageSupported(tt.lang); got != tt.want {
			t.Errorf("IsLanguageSupported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}
