package main

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/localegate/handler"
	"github.com/dmitrymomot/localegate/modules/locale"
	"github.com/dmitrymomot/localegate/pkg/clientip"
	"github.com/dmitrymomot/localegate/pkg/cookie"
	"github.com/dmitrymomot/localegate/pkg/environment"
	"github.com/dmitrymomot/localegate/pkg/httpserver"
	"github.com/dmitrymomot/localegate/pkg/i18n"
	"github.com/dmitrymomot/localegate/pkg/logger"
	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
	"github.com/dmitrymomot/localegate/pkg/redis"
	"github.com/dmitrymomot/localegate/pkg/requestid"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

// app holds the wired dependencies shared by the router.
type app struct {
	env        environment.Environment
	log        *slog.Logger
	languages  *i18n.LanguageSet
	translator *i18n.Translator
	locale     *locale.Service
	checks     []httpserver.Check
	closers    []func()
}

func (a *app) close() {
	for _, fn := range a.closers {
		fn()
	}
}

func run(ctx context.Context, cfg appConfig) error {
	env := cfg.environment()
	log := logger.New(
		logger.WithEnvironment(env, cfg.Name),
		logger.FromConfig(cfg.Log),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, a.routes())
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	languages, err := i18n.NewLanguageSet(cfg.DefaultLang, cfg.Languages...)
	if err != nil {
		return nil, fmt.Errorf("configure languages: %w", err)
	}

	translator, err := newTranslator(ctx, cfg, languages, log)
	if err != nil {
		return nil, err
	}

	secrets := cfg.Cookie.Secrets
	if len(secrets) == 0 {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		log.WarnContext(ctx, "COOKIE_SECRETS is not set, visitor cookies will not survive a restart")
		secrets = []string{secret}
	}
	cookieCfg := cfg.Cookie
	cookieCfg.Secrets = secrets
	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return nil, fmt.Errorf("configure cookies: %w", err)
	}

	a := &app{
		env:        cfg.environment(),
		log:        log,
		languages:  languages,
		translator: translator,
	}

	var (
		prefs  i18n.PreferenceStore
		limits ratelimiter.Store
	)
	if cfg.Redis.URL == "" {
		log.InfoContext(ctx, "REDIS_URL is not set, using in-memory stores")
		prefs = i18n.NewMemoryStore()
		mem := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, mem.Close)
		limits = mem
	} else {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.checks = append(a.checks, redis.Healthcheck(client))
		prefs = redis.NewPreferenceStore(client, cfg.Redis.KeyPrefix, cfg.Redis.PreferenceTTL)
		limits = redis.NewRateLimitStore(client, cfg.Redis.RateLimitPrefix)
	}

	limiter, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("configure rate limit: %w", err)
	}

	a.locale = locale.NewService(cfg.Locale, languages, translator, prefs, cookies, log,
		locale.WithWriteLimiter(limiter, clientip.Key),
	)
	return a, nil
}

func newTranslator(ctx context.Context, cfg appConfig, languages *i18n.LanguageSet, log *slog.Logger) (*i18n.Translator, error) {
	parser := i18n.NewYAMLParser()
	adapter := i18n.NewFSAdapter(parser, translationsFS, "translations", log)
	if cfg.TranslationsDir != "" {
		adapter = i18n.NewDirectoryAdapter(parser, cfg.TranslationsDir, log)
	}

	translator, err := i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(languages.Default()),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(!cfg.environment().IsProduction()),
	)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	loaded := translator.SupportedLanguages()
	for _, tag := range languages.Tags() {
		if !slices.Contains(loaded, tag) {
			log.WarnContext(ctx, "No translations for supported language", logger.Lang(tag))
		}
	}
	return translator, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cookie secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(clientip.Middleware)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(a.env))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.log, a.checks...))

	r.Mount("/api/locale", a.locale.Handle())

	r.Group(func(r chi.Router) {
		r.Use(i18n.LocaleRedirect(a.languages, a.locale.Extractor(),
			i18n.WithSkipPaths("/api/", "/healthz", "/readyz"),
		))
		r.Get("/*", handler.Wrap(a.home))
	})

	return r
}
