// Package translation is a string-catalog lookup keyed by the English
// source text. Unknown languages and untranslated strings fall back to
// English, so the catalogs never gate new messages.
package translation

import "fmt"

// Supported lists the bot languages in display order.
var Supported = []string{"be", "uk", "pl", "lt", "en", "ru"}

// LangName maps a language code to its self-name for the language menu.
var LangName = map[string]string{
	"be": "Беларуская мова",
	"uk": "Українська мова",
	"pl": "Język polski",
	"lt": "Lietuvių kalba",
	"en": "English language",
	"ru": "Русский язык",
}

// IsSupported reports whether the code names a known bot language.
func IsSupported(lang string) bool {
	for _, s := range Supported {
		if s == lang {
			return true
		}
	}
	return false
}

// T translates the source string into lang and applies Sprintf arguments.
func T(lang, source string, args ...any) string {
	text := source
	if c, ok := catalogs[lang]; ok {
		if translated, ok := c[source]; ok {
			text = translated
		}
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
