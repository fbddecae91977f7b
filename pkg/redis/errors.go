package redis

import "errors"

var (
	// ErrMissingURL is returned by Connect when REDIS_URL is empty.
	ErrMissingURL = errors.New("redis: connection url is empty")
	// ErrInvalidURL wraps redis.ParseURL failures.
	ErrInvalidURL = errors.New("redis: invalid connection url")
	// ErrUnavailable means the server did not answer PING before the
	// retries or ConnectTimeout ran out.
	ErrUnavailable = errors.New("redis: server unavailable")
	// ErrNotReady is reported by the readiness check.
	ErrNotReady = errors.New("redis: not ready")
)
