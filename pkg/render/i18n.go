package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMissingTranslator is passed to OnMissing handlers when a locale is
// requested but no Translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a UI string key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to render when a translation cannot
// be resolved. The returned string is used verbatim.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_, key string, _ []any, _ error) string {
	return key
}

// Localize resolves key through the options' translator, falling back to
// fallback (and finally to the key itself) when no translation is available.
// Renderers use it for their UI chrome; author content is never passed here.
func Localize(opts Options, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = func(_, _ string, _ []any, _ error) string {
			if strings.TrimSpace(fallback) != "" {
				return fallback
			}
			return key
		}
	}

	if opts.Translator == nil {
		return onMissing(opts.Locale, key, nil, ErrMissingTranslator)
	}

	result, err := opts.Translator.Translate(opts.Locale, key)
	if err != nil || strings.TrimSpace(result) == "" {
		return onMissing(opts.Locale, key, nil, err)
	}
	return result
}

// Catalog is a map-backed Translator keyed by locale then message key.
// Lookups fall back to the default locale before failing.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

// NewCatalog creates a catalog whose lookups fall back to defaultLocale.
func NewCatalog(defaultLocale string) *Catalog {
	return &Catalog{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]string),
	}
}

// Add merges entries into a locale's message set.
func (c *Catalog) Add(locale string, entries map[string]string) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := c.messages[locale]
	if bucket == nil {
		bucket = make(map[string]string, len(entries))
		c.messages[locale] = bucket
	}
	for key, value := range entries {
		bucket[key] = value
	}
	return c
}

// Translate resolves key for locale, falling back to the default locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if msg, ok := c.messages[locale][key]; ok {
		return format(msg, args), nil
	}
	if msg, ok := c.messages[c.defaultLocale][key]; ok {
		return format(msg, args), nil
	}
	return "", fmt.Errorf("render: no translation for %q in locale %q", key, locale)
}

func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
