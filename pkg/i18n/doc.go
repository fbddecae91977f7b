// Package i18n negotiates the request language and serves translation
// bundles for the portfolio web application.
//
// # Language negotiation
//
// SelectLanguage maps a raw Accept-Language header to one supported
// language. Preferences are ranked by quality with a stable sort, so equal
// weights keep header order. Each preference tries its base subtag first
// ("ko" for "ko-KR") and then the full tag; the first hit wins and the
// default is returned when nothing matches. The function is pure and total:
// any input, including garbage, produces a supported language or the
// default.
//
//	lang := i18n.SelectLanguage("ko-KR,ko;q=0.9,en;q=0.8", []string{"en", "ko"}, "en")
//	// lang == "ko"
//
// LanguageSet holds the configured languages, validated once at start-up
// with golang.org/x/text/language, and exposes display names for
// language switchers.
//
// # HTTP integration
//
// DefaultLangExtractor reads the language from the path prefix, a cookie,
// a query parameter, the Language header and finally Accept-Language.
// Middleware stores the result in the request context and LocaleRedirect
// sends unprefixed page URLs to their localized counterpart:
//
//	set := i18n.MustLanguageSet("en", "en", "ko")
//	extr := i18n.DefaultLangExtractor(i18n.WithLanguages(set))
//
//	r := chi.NewRouter()
//	r.Use(i18n.Middleware(extr, set.Default()))
//	r.With(i18n.LocaleRedirect(set, extr, i18n.WithSkipPaths("/api"))).Get("/*", pages)
//
// # Translations
//
// Translator loads bundles through a TranslationAdapter (in-memory map,
// single file, directory or embed.FS) with YAML or JSON parsers. Messages
// use %{name} placeholders and zero/one/other plural forms:
//
//	msg := translator.Tc(r.Context(), "welcome", "name", "John")
//
// ExportJSON returns a full bundle for client-side rendering.
//
// # Preferences
//
// PreferenceStore persists an explicitly chosen language per visitor.
// MemoryStore is provided here; a Redis implementation lives in pkg/redis.
package i18n
