package main

import (
	"errors"

	"github.com/dmitrymomot/localegate/modules/locale"
	"github.com/dmitrymomot/localegate/pkg/cookie"
	"github.com/dmitrymomot/localegate/pkg/environment"
	"github.com/dmitrymomot/localegate/pkg/httpserver"
	"github.com/dmitrymomot/localegate/pkg/logger"
	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
	"github.com/dmitrymomot/localegate/pkg/redis"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"localegate"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	Languages   []string `env:"I18N_LANGUAGES" envSeparator:"," envDefault:"en,ko"`
	DefaultLang string   `env:"I18N_DEFAULT" envDefault:"en"`

	// TranslationsDir replaces the embedded bundles when set.
	TranslationsDir string `env:"I18N_TRANSLATIONS_DIR"`

	Log       logger.Config
	HTTP      httpserver.Config
	Redis     redis.Config
	Cookie    cookie.Config
	Locale    locale.Config
	RateLimit ratelimiter.Config
}

var errMissingCookieSecrets = errors.New("COOKIE_SECRETS is required in production")

func (c *appConfig) Validate() error {
	if c.environment().IsProduction() && len(c.Cookie.Secrets) == 0 {
		return errMissingCookieSecrets
	}
	return nil
}

func (c *appConfig) environment() environment.Environment {
	return environment.Parse(c.Env)
}
