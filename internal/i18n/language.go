// Package i18n holds the two site locales and their translation table.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one of the two site locales.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// ErrUnknownLanguage is returned when a language code is neither en nor fr.
var ErrUnknownLanguage = errors.New("i18n: unknown language")

// Languages lists the supported locales in display order.
func Languages() []Language {
	return []Language{English, French}
}

// ParseLanguage maps a language code ("en", "FR", "fr-CA") to a Language.
func ParseLanguage(code string) (Language, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(c, "-_"); i > 0 {
		c = c[:i]
	}
	switch Language(c) {
	case English:
		return English, nil
	case French:
		return French, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// Toggle returns the other locale.
func (l Language) Toggle() Language {
	if l == French {
		return English
	}
	return French
}

func (l Language) String() string { return string(l) }
