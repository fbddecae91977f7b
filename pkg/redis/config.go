package redis

import "time"

// Config is read from the environment by config.Load. An empty URL means
// Redis is not configured and callers fall back to in-memory stores.
type Config struct {
	URL             string        `env:"REDIS_URL"`
	RetryAttempts   int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout  time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
	KeyPrefix       string        `env:"REDIS_KEY_PREFIX" envDefault:"localegate:lang:"`
	RateLimitPrefix string        `env:"REDIS_RATE_LIMIT_PREFIX" envDefault:"localegate:rl:"`
	PreferenceTTL   time.Duration `env:"PREFERENCE_TTL" envDefault:"8760h"`
}
