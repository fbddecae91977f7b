package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid rate limit configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrLimitExceeded is passed to the deny handler when a key has no
	// tokens left.
	ErrLimitExceeded = errors.New("rate limit exceeded")
)
