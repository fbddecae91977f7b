package ratelimiter

import (
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
)

// maxKeyLength bounds storage keys built by Composite.
const maxKeyLength = 64

// KeyFunc extracts the rate limit key from a request. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// Composite joins the non-empty keys with ":" and hashes the result with
// FNV-1a when it is longer than 64 bytes.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// DenyFunc writes the response for a rejected request. err is
// ErrLimitExceeded or the store error.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware limits requests per key and sets the X-RateLimit-* headers.
// A nil deny writes a plain text 429, or 503 when the store fails.
func Middleware(l Limiter, keyFunc KeyFunc, deny DenyFunc) func(http.Handler) http.Handler {
	if deny == nil {
		deny = func(w http.ResponseWriter, _ *http.Request, err error) {
			if errors.Is(err, ErrLimitExceeded) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := l.Allow(r.Context(), key)
			if err != nil {
				deny(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if secs := int(result.RetryAfter().Seconds()); secs > 0 {
					h.Set("Retry-After", strconv.Itoa(secs))
				}
				deny(w, r, ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
