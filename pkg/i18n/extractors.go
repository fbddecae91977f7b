package i18n

import (
	"net/http"
	"strings"
)

// maxLangCodeLength is the longest language code accepted from a cookie,
// query parameter, header or path segment (RFC 5646 recommends 35).
const maxLangCodeLength = 35

// ExtractorConfig holds configuration for the language extractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	PathPrefix     bool
	Languages      *LanguageSet
}

// ExtractorOption configures the language extractor.
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie checked for a language preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter checked for a language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithPathPrefix enables reading the language from the first path
// segment, as in "/ko/portfolio". Only supported tags are accepted, so it
// has no effect without WithLanguages.
func WithPathPrefix() ExtractorOption {
	return func(c *ExtractorConfig) {
		c.PathPrefix = true
	}
}

// WithLanguages validates every extracted value against the set.
func WithLanguages(set *LanguageSet) ExtractorOption {
	return func(c *ExtractorConfig) {
		if set != nil {
			c.Languages = set
		}
	}
}

// DefaultLangExtractor creates an extractor that checks, in order:
//  1. the first path segment (when WithPathPrefix is set)
//  2. a cookie (default name "lang")
//  3. a query parameter (default name "lang")
//  4. the non-standard Language header
//  5. the Accept-Language header
//
// With a language set, explicit values are resolved with LanguageSet.Match
// and Accept-Language is negotiated with SelectLanguage. An unresolvable
// source is skipped. Without a set, values are returned lower-cased and the
// top ranked Accept-Language entry wins.
//
// The extractor returns "" when nothing was found so that the middleware
// can apply its own default.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	resolve := func(code string) string {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || len(code) > maxLangCodeLength {
			return ""
		}
		if cfg.Languages == nil {
			return code
		}
		return cfg.Languages.Match(code)
	}

	return func(r *http.Request) string {
		if cfg.PathPrefix && cfg.Languages != nil {
			if seg := firstPathSegment(r.URL.Path); cfg.Languages.Contains(seg) {
				return strings.ToLower(seg)
			}
		}

		if cfg.CookieName != "" {
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				if lang := resolve(c.Value); lang != "" {
					return lang
				}
			}
		}

		if cfg.QueryParamName != "" {
			if lang := resolve(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
				return lang
			}
		}

		if lang := resolve(r.Header.Get("Language")); lang != "" {
			return lang
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if cfg.Languages != nil {
			return SelectLanguage(header, cfg.Languages.tags, "")
		}
		if prefs := ParseAcceptLanguage(header); len(prefs) > 0 {
			return prefs[0].Tag
		}
		return ""
	}
}

// PreferenceExtractor returns the language stored for the visitor that
// visitorID identifies. Lookup failures are treated as "no preference".
func PreferenceExtractor(store PreferenceStore, visitorID func(r *http.Request) string, set *LanguageSet) LangExtractor {
	return func(r *http.Request) string {
		if store == nil || visitorID == nil {
			return ""
		}
		id := visitorID(r)
		if id == "" {
			return ""
		}
		lang, err := store.Get(r.Context(), id)
		if err != nil {
			return ""
		}
		if set != nil {
			return set.Match(lang)
		}
		return lang
	}
}

// ChainExtractors tries each extractor in order and returns the first
// non-empty result.
func ChainExtractors(extractors ...LangExtractor) LangExtractor {
	return func(r *http.Request) string {
		for _, ex := range extractors {
			if ex == nil {
				continue
			}
			if lang := ex(r); lang != "" {
				return lang
			}
		}
		return ""
	}
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return path
}
