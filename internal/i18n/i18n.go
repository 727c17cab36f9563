// Package i18n provides user-interface message translation for nara.
//
// The deployment language defaults to Thai; NARA_LANG overrides it. Strings
// that are part of a response contract (the retrieval context format, the
// provider error messages) live as constants in their owning packages, not
// here. This catalog covers the interactive UI only.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Supported languages.
const (
	LangTH = "th"
	LangEN = "en"
)

var currentLang = LangTH

// messages stores all translations, keyed by language then message key.
var messages = make(map[string]map[string]string)

// Init initializes the i18n system with the specified language.
func Init(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))

	switch lang {
	case "th", "th-th", "thai":
		currentLang = LangTH
	case "en", "en-us", "english":
		currentLang = LangEN
	default:
		currentLang = LangTH
	}

	loadMessages()
}

// SetLanguage changes the current language.
func SetLanguage(lang string) {
	Init(lang)
}

// GetLanguage returns the current language.
func GetLanguage() string {
	return currentLang
}

// T returns the translated message for the given key.
// Falls back to Thai, then to the key itself.
func T(key string) string {
	if msg, ok := messages[currentLang][key]; ok {
		return msg
	}
	if msg, ok := messages[LangTH][key]; ok {
		return msg
	}
	return key
}

// Sprintf returns the translated and formatted message.
func Sprintf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

func loadMessages() {
	messages[LangTH] = make(map[string]string)
	messages[LangEN] = make(map[string]string)

	loadThaiMessages()
	loadEnglishMessages()
}

// GetSupportedLanguages returns the supported language codes.
func GetSupportedLanguages() []string {
	return []string{LangTH, LangEN}
}

// IsLanguageSupported checks if a language is supported.
func IsLanguageSupported(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, supported := range GetSupportedLanguages() {
		if strings.EqualFold(lang, supported) {
			return true
		}
	}
	return false
}

func init() {
	if envLang := os.Getenv("NARA_LANG"); envLang != "" {
		Init(envLang)
	} else {
		Init(LangTH)
	}
}
