package i18n

import (
	"context"
	"log/slog"
)

type localeContextKey struct{}

// SetLocale stores the resolved language in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the language stored by SetLocale, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// LoggerExtractor returns a logger.ContextExtractor that adds the request
// language under the key "lang".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
			return slog.String("lang", locale), true
		}
		return slog.Attr{}, false
	}
}
