package i18n

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed translations.yaml
var defaultTranslations []byte

// Translations maps a message key to its text in one language.
type Translations map[string]string

// Get returns the text for key, or the key itself when it is missing.
func (t Translations) Get(key string) string {
	if v, ok := t[key]; ok {
		return v
	}
	return key
}

// Bundle is the read-only translation table for every supported language.
type Bundle struct {
	tables map[Language]Translations
}

// Load decodes the embedded translation table.
func Load() (*Bundle, error) {
	return Parse(defaultTranslations)
}

// Parse decodes a YAML translation table keyed by language code. Every
// language must define the same set of keys.
func Parse(data []byte) (*Bundle, error) {
	var raw map[string]Translations
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode translations: %w", err)
	}

	b := &Bundle{tables: make(map[Language]Translations, len(raw))}
	for _, lang := range Languages() {
		table, ok := raw[lang.String()]
		if !ok {
			return nil, fmt.Errorf("translations for %q are missing", lang)
		}
		b.tables[lang] = table
	}

	reference := b.tables[English]
	for _, lang := range Languages()[1:] {
		if missing := missingKeys(reference, b.tables[lang]); len(missing) > 0 {
			return nil, fmt.Errorf("translations for %q lack keys %v", lang, missing)
		}
		if missing := missingKeys(b.tables[lang], reference); len(missing) > 0 {
			return nil, fmt.Errorf("translations for %q lack keys %v", English, missing)
		}
	}
	return b, nil
}

func missingKeys(want, have Translations) []string {
	var missing []string
	for k := range want {
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// For returns the table of one language. Unknown languages get English.
func (b *Bundle) For(lang Language) Translations {
	if t, ok := b.tables[lang]; ok {
		return t
	}
	return b.tables[English]
}

// T is shorthand for b.For(lang).Get(key).
func (b *Bundle) T(lang Language, key string) string {
	return b.For(lang).Get(key)
}
