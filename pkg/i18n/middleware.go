package i18n

import (
	"net/http"
	"strings"
)

// Middleware resolves the request language with extr and stores it in the
// request context, where GetLocale and Translator.Tc pick it up.
//
// A nil extractor falls back to DefaultLangExtractor. When the extractor
// yields nothing, defaultLang is used, and DefaultLanguage if that is empty
// too. The chosen language is echoed in the Content-Language header.
func Middleware(extr LangExtractor, defaultLang string) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = defaultLang
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

// RedirectOption configures LocaleRedirect.
type RedirectOption func(*redirectConfig)

type redirectConfig struct {
	skipPaths []string
	status    int
}

// WithSkipPaths excludes path prefixes (API, health checks, assets) from
// locale redirects.
func WithSkipPaths(paths ...string) RedirectOption {
	return func(c *redirectConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithRedirectStatus overrides the redirect status code (default 307).
func WithRedirectStatus(code int) RedirectOption {
	return func(c *redirectConfig) {
		if code >= 300 && code < 400 {
			c.status = code
		}
	}
}

// LocaleRedirect makes every page URL carry a language prefix.
//
// A GET or HEAD request whose first path segment is not a supported tag is
// redirected to the same path under the negotiated language ("/portfolio"
// becomes "/ko/portfolio"), keeping the query string. Prefixed requests pass
// through with the prefix language stored in the context. Skipped paths and
// other methods pass through untouched.
func LocaleRedirect(set *LanguageSet, extr LangExtractor, opts ...RedirectOption) func(http.Handler) http.Handler {
	cfg := &redirectConfig{status: http.StatusTemporaryRedirect}
	for _, opt := range opts {
		opt(cfg)
	}
	if extr == nil {
		extr = DefaultLangExtractor(WithLanguages(set))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			for _, p := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if seg := firstPathSegment(r.URL.Path); set.Contains(seg) {
				lang := strings.ToLower(seg)
				next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
				return
			}

			lang := extr(r)
			if lang == "" {
				lang = set.Default()
			}

			// The escaped form keeps encoded '?', '#' and spaces inside the path.
			target := "/" + lang + r.URL.EscapedPath()
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			w.Header().Set("Vary", "Accept-Language, Cookie")
			http.Redirect(w, r, target, cfg.status)
		})
	}
}
