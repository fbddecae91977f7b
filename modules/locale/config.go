package locale

import "time"

// Config holds the cookie settings of the locale module.
type Config struct {
	// LangCookie mirrors the chosen language so that edge middleware can
	// read it without calling the API.
	LangCookie string `env:"I18N_COOKIE" envDefault:"lang"`

	// VisitorCookie carries the signed visitor id that keys the
	// preference store.
	VisitorCookie string `env:"VISITOR_COOKIE" envDefault:"visitor_id"`

	CookieMaxAge time.Duration `env:"PREFERENCE_TTL" envDefault:"8760h"`
}

const (
	defaultLangCookie    = "lang"
	defaultVisitorCookie = "visitor_id"
	defaultCookieMaxAge  = 365 * 24 * time.Hour
)

func (c Config) withDefaults() Config {
	if c.LangCookie == "" {
		c.LangCookie = defaultLangCookie
	}
	if c.VisitorCookie == "" {
		c.VisitorCookie = defaultVisitorCookie
	}
	if c.CookieMaxAge <= 0 {
		c.CookieMaxAge = defaultCookieMaxAge
	}
	return c
}
