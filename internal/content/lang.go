package content

import (
	"strings"
	"sync"
)

// Lang is a supported site language.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Langs lists every language the site is published in.
var Langs = []Lang{English, Arabic}

// ParseLang maps a code such as "ar" or "AR-eg" to a Lang, falling back to
// English for anything unknown.
func ParseLang(code string) Lang {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == string(Arabic) || strings.HasPrefix(code, "ar-") || strings.HasPrefix(code, "ar_") {
		return Arabic
	}
	return English
}

// Dir is the HTML text direction for the language.
func (l Lang) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Other returns the language the toggle switches to.
func (l Lang) Other() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

// ToggleLabel is the text on the language switch, written in the target language.
func (l Lang) ToggleLabel() string {
	if l == Arabic {
		return "English"
	}
	return "العربية"
}

// Locale holds the active language. Renderers take it explicitly instead of
// reading a package-level flag; Set and Toggle are the only ways to change it.
type Locale struct {
	mu   sync.RWMutex
	lang Lang
}

func NewLocale(lang Lang) *Locale {
	return &Locale{lang: ParseLang(string(lang))}
}

func (l *Locale) Lang() Lang {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

func (l *Locale) Set(lang Lang) {
	l.mu.Lock()
	l.lang = ParseLang(string(lang))
	l.mu.Unlock()
}

// Toggle flips between English and Arabic and returns the new language.
func (l *Locale) Toggle() Lang {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lang = l.lang.Other()
	return l.lang
}
