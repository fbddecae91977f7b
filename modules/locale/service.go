// Package locale serves the language API used by the web front-end: the
// supported languages, header negotiation, per-visitor preferences,
// translation bundles and an HTML language picker.
package locale

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localegate/binder"
	"github.com/dmitrymomot/localegate/handler"
	"github.com/dmitrymomot/localegate/pkg/cookie"
	"github.com/dmitrymomot/localegate/pkg/i18n"
	"github.com/dmitrymomot/localegate/pkg/logger"
	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
)

// Service exposes language negotiation and visitor preferences over HTTP.
type Service struct {
	cfg        Config
	languages  *i18n.LanguageSet
	translator *i18n.Translator
	store      i18n.PreferenceStore
	cookies    *cookie.Manager
	log        *slog.Logger

	writeLimiter ratelimiter.Limiter
	limitKey     ratelimiter.KeyFunc
}

// Option configures a Service.
type Option func(*Service)

// WithWriteLimiter throttles preference changes per key, usually
// clientip.Key. Rejected requests get a localized 429.
func WithWriteLimiter(l ratelimiter.Limiter, key ratelimiter.KeyFunc) Option {
	return func(s *Service) {
		if l != nil && key != nil {
			s.writeLimiter = l
			s.limitKey = key
		}
	}
}

// NewService builds the locale API. A nil logger discards output.
func NewService(
	cfg Config,
	languages *i18n.LanguageSet,
	translator *i18n.Translator,
	store i18n.PreferenceStore,
	cookies *cookie.Manager,
	log *slog.Logger,
	opts ...Option,
) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		cfg:        cfg.withDefaults(),
		languages:  languages,
		translator: translator,
		store:      store,
		cookies:    cookies,
		log:        log.With(logger.Component("locale")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extractor resolves the request language from, in order: a supported path
// prefix, the stored visitor preference, the language cookie, the lang query
// parameter, the Language header and Accept-Language.
func (s *Service) Extractor() i18n.LangExtractor {
	pathOnly := func(r *http.Request) string {
		if seg := firstSegment(r.URL.Path); s.languages.Contains(seg) {
			return s.languages.Match(seg)
		}
		return ""
	}
	return i18n.ChainExtractors(
		pathOnly,
		i18n.PreferenceExtractor(s.store, s.VisitorID, s.languages),
		i18n.DefaultLangExtractor(
			i18n.WithLanguages(s.languages),
			i18n.WithCookieName(s.cfg.LangCookie),
		),
	)
}

// Handle returns the module router, meant to be mounted at /api/locale.
//
//	r.Mount("/api/locale", svc.Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(i18n.Middleware(s.Extractor(), s.languages.Default()))

	r.Get("/languages", handler.Wrap(s.listLanguages,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/negotiate", handler.Wrap(s.negotiate,
		handler.WithBinders[handler.Context, NegotiateRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, NegotiateRequest](s.errorHandler),
	))

	r.Group(func(r chi.Router) {
		if s.writeLimiter != nil {
			r.Use(ratelimiter.Middleware(s.writeLimiter, s.limitKey, s.denyWrite))
		}

		r.Put("/preference", handler.Wrap(s.setPreference,
			handler.WithBinders[handler.Context, PreferenceRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, PreferenceRequest](s.errorHandler),
		))

		r.Delete("/preference", handler.Wrap(s.deletePreference,
			handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
		))
	})

	r.Get("/translations/{lang}", handler.Wrap(s.translations,
		handler.WithBinders[handler.Context, TranslationsRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, TranslationsRequest](s.errorHandler),
	))

	r.Get("/picker", handler.Wrap(s.picker,
		handler.WithBinders[handler.Context, PickerRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, PickerRequest](s.errorHandler),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})

	return r
}

// LanguagesResponse lists the configured languages.
type LanguagesResponse struct {
	Default   string              `json:"default"`
	Current   string              `json:"current"`
	Languages []i18n.LanguageInfo `json:"languages"`
}

func (s *Service) listLanguages(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(LanguagesResponse{
		Default:   s.languages.Default(),
		Current:   i18n.GetLocale(ctx),
		Languages: s.languages.Languages(),
	})
}

// NegotiateRequest overrides the request's own Accept-Language header when
// Header is set, so edge middleware can forward the browser header.
type NegotiateRequest struct {
	Header string `query:"header"`
}

type LanguageResponse struct {
	Language string `json:"language"`
}

func (s *Service) negotiate(ctx handler.Context, req NegotiateRequest) handler.Response {
	header := req.Header
	if header == "" {
		header = ctx.Request().Header.Get("Accept-Language")
	}
	return handler.JSON(
		LanguageResponse{Language: s.languages.Select(header)},
		handler.WithJSONHeader("Vary", "Accept-Language"),
	)
}

type PreferenceRequest struct {
	Language string `json:"language"`
}

func (s *Service) setPreference(ctx handler.Context, req PreferenceRequest) handler.Response {
	lang := s.languages.Match(req.Language)
	if lang == "" {
		verr := handler.NewValidationError()
		if req.Language == "" {
			verr.Add("language", s.message(ctx, "validation.required", "is required"))
		} else {
			verr.Add("language", s.message(ctx, "validation.unsupported_language", "is not supported"))
		}
		return handler.JSONError(verr, handler.WithErrorMessage(s.message(ctx, "errors.validation_error", "")))
	}

	w, r := ctx.ResponseWriter(), ctx.Request()
	visitorID := s.ensureVisitor(w, r)
	if err := s.store.Set(ctx, visitorID, lang); err != nil {
		s.log.ErrorContext(ctx, "Failed to store language preference",
			logger.VisitorID(visitorID),
			logger.Lang(lang),
			logger.Error(err),
		)
		return s.jsonError(ctx, handler.ErrServiceUnavailable)
	}

	s.cookies.Set(w, s.cfg.LangCookie, lang,
		cookie.WithMaxAge(s.cfg.CookieMaxAge),
		cookie.WithHTTPOnly(false),
	)
	s.log.InfoContext(ctx, "Language preference saved", logger.VisitorID(visitorID), logger.Lang(lang))

	return handler.JSON(LanguageResponse{Language: lang}, handler.WithJSONHeader("Content-Language", lang))
}

func (s *Service) deletePreference(ctx handler.Context, _ struct{}) handler.Response {
	w, r := ctx.ResponseWriter(), ctx.Request()
	if visitorID := s.VisitorID(r); visitorID != "" {
		err := s.store.Delete(ctx, visitorID)
		if err != nil && !errors.Is(err, i18n.ErrPreferenceNotFound) {
			s.log.ErrorContext(ctx, "Failed to delete language preference",
				logger.VisitorID(visitorID),
				logger.Error(err),
			)
			return s.jsonError(ctx, handler.ErrServiceUnavailable)
		}
	}
	s.cookies.Delete(w, s.cfg.LangCookie, cookie.WithHTTPOnly(false))
	return handler.Empty()
}

type TranslationsRequest struct {
	Lang string `path:"lang"`
}

func (s *Service) translations(ctx handler.Context, req TranslationsRequest) handler.Response {
	lang := s.languages.Match(req.Lang)
	if lang == "" {
		return s.jsonError(ctx, handler.ErrNotFound)
	}

	data, err := s.translator.ExportJSON(lang)
	if err != nil {
		var notSupported *i18n.ErrLanguageNotSupported
		if errors.As(err, &notSupported) {
			return s.jsonError(ctx, handler.ErrNotFound)
		}
		return s.jsonError(ctx, err)
	}

	return handler.Raw("application/json; charset=utf-8", data,
		handler.WithHeader("Content-Language", lang),
		handler.WithHeader("Cache-Control", "public, max-age=300"),
	)
}

// PickerRequest carries the page the picker links should point to.
type PickerRequest struct {
	Path string `query:"path"`
}

func (s *Service) picker(ctx handler.Context, req PickerRequest) handler.Response {
	return handler.Templ(Picker(s.PickerFor(ctx, req.Path)))
}

// PickerFor builds the switcher for the request language, with every link
// pointing at path (a local page path, with or without language prefix)
// under the respective language.
func (s *Service) PickerFor(ctx context.Context, path string) PickerParams {
	current := i18n.GetLocale(ctx)
	path = s.pagePath(path)

	params := PickerParams{
		Title:   s.message(ctx, "picker.title", "Language"),
		Current: current,
	}
	for _, info := range s.languages.Languages() {
		params.Options = append(params.Options, PickerOption{
			Tag:    info.Tag,
			Label:  info.NativeName,
			Title:  info.Name,
			Href:   "/" + info.Tag + path,
			Active: info.Tag == current,
		})
	}
	return params
}

// pagePath sanitizes a picker target: only local absolute paths are kept,
// and an existing language prefix is dropped.
func (s *Service) pagePath(path string) string {
	if path == "" || path[0] != '/' || len(path) > 1 && (path[1] == '/' || path[1] == '\\') {
		return "/"
	}
	if seg := firstSegment(path); s.languages.Contains(seg) {
		path = path[1+len(seg):]
		if path == "" {
			path = "/"
		}
	}
	return path
}

func firstSegment(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return seg
}
