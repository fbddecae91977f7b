package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *clock) {
	t.Helper()
	clk := &clock{now: time.Now()}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(clk.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, clk
}

func TestNewBucketValidation(t *testing.T) {
	t.Parallel()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig, "config %+v", cfg)
	}

	_, err := ratelimiter.NewBucket(nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, clk := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})

	for i := range 3 {
		res, err := b.Allow(ctx, "ip-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 2-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := b.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	res, err = b.Status(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining, "denied requests do not consume tokens")

	other, err := b.Allow(ctx, "ip-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")

	clk.Advance(2 * time.Second)
	res, err = b.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	clk.Advance(time.Hour)
	res, err = b.Status(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining, "refill is capped at capacity")

	_, err = b.AllowN(ctx, "ip-1", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err = b.AllowN(ctx, "ip-1", 4)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	_, _ = b.Allow(ctx, "ip-1")
	require.NoError(t, b.Reset(ctx, "ip-1"))
	res, err = b.Status(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining)
}

func TestResultRetryAfter(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ratelimiter.Result{Remaining: 0, ResetAt: time.Now().Add(time.Minute)}.RetryAfter())
	assert.Positive(t, ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(time.Minute)}.RetryAfter())
	assert.Zero(t, ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Minute)}.RetryAfter())
}

func TestComposite(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	fixed := func(s string) ratelimiter.KeyFunc { return func(*http.Request) string { return s } }

	assert.Equal(t, "a:b", ratelimiter.Composite(fixed("a"), fixed(""), fixed("b"))(req))
	assert.Equal(t, "", ratelimiter.Composite(fixed(""))(req))

	long := ratelimiter.Composite(fixed(strings.Repeat("x", 50)), fixed(strings.Repeat("y", 50)))(req)
	assert.LessOrEqual(t, len(long), 64)
	assert.Equal(t, long, ratelimiter.Composite(fixed(strings.Repeat("x", 50)), fixed(strings.Repeat("y", 50)))(req))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	key := func(r *http.Request) string { return r.Header.Get("X-Client") }
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := ratelimiter.Middleware(b, key, nil)(ok)

	do := func(client string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/preference", nil)
		if client != "" {
			req.Header.Set("X-Client", client)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do("c1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusNoContent, do("c1").Code)

	rec = do("c1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, do("c2").Code)
	for range 5 {
		assert.Equal(t, http.StatusNoContent, do("").Code, "empty key is not limited")
	}
}

type brokenStore struct{}

func (brokenStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}
func (brokenStore) Reset(context.Context, string) error { return nil }

func TestMiddlewareDeny(t *testing.T) {
	t.Parallel()
	b, err := ratelimiter.NewBucket(brokenStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)
	key := func(*http.Request) string { return "k" }
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	ratelimiter.Middleware(b, key, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var got error
	deny := func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}
	rec = httptest.NewRecorder()
	ratelimiter.Middleware(b, key, deny)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.EqualError(t, got, "store down")
}

func TestMemoryStoreConcurrent(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
