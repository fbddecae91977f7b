package i18n

import (
	"io"
	"log/slog"
	"strings"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when the context carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether a missing translation returns its key
// (the default) or an empty string.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
// Off by default.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// WithNoLogging disables all translator logging.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		t.missingLogMode = false
	}
}
