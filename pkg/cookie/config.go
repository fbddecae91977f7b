package cookie

import (
	"net/http"
	"strings"
	"time"
)

// Config is read from the environment by config.Load.
type Config struct {
	Secrets  []string      `env:"COOKIE_SECRETS" envSeparator:","`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string        `env:"COOKIE_SAME_SITE" envDefault:"lax"`
	MaxAge   time.Duration `env:"COOKIE_MAX_AGE" envDefault:"8760h"`
}

// Option overrides cookie attributes for a single Set call or for all
// cookies written by a Manager.
type Option func(*http.Cookie)

func WithPath(path string) Option {
	return func(c *http.Cookie) { c.Path = path }
}

func WithMaxAge(d time.Duration) Option {
	return func(c *http.Cookie) { c.MaxAge = int(d / time.Second) }
}

func WithSecure(secure bool) Option {
	return func(c *http.Cookie) { c.Secure = secure }
}

// WithHTTPOnly false lets client scripts read the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(c *http.Cookie) { c.HttpOnly = httpOnly }
}

func WithDomain(domain string) Option {
	return func(c *http.Cookie) { c.Domain = domain }
}

func WithSameSite(mode http.SameSite) Option {
	return func(c *http.Cookie) { c.SameSite = mode }
}

// NewFromConfig builds a Manager from cfg followed by opts.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{
		WithDomain(cfg.Domain),
		WithSecure(cfg.Secure),
		WithSameSite(parseSameSite(cfg.SameSite)),
	}
	if cfg.MaxAge > 0 {
		base = append(base, WithMaxAge(cfg.MaxAge))
	}
	return New(cfg.Secrets, append(base, opts...)...)
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
