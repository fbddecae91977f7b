package ratelimiter

import (
	"context"
	"time"
)

// Config describes a token bucket. It is read from the environment by
// config.Load.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"RATE_LIMIT_CAPACITY" envDefault:"20"`

	// RefillRate tokens are added every RefillInterval, up to Capacity.
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"3s"`
}

// Result is the outcome of a single check.
type Result struct {
	Limit     int
	Remaining int // negative when the request was denied
	ResetAt   time.Time
}

func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed requests.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store keeps bucket state. Implementations must refill and consume
// atomically per key, and leave the bucket untouched when fewer than
// tokens are available.
type Store interface {
	// ConsumeTokens returns the tokens left after taking tokens; a negative
	// value means the request was denied. tokens may be 0 to read the state.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
