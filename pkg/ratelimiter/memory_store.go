package ratelimiter

import (
	"context"
	"sync"
	"time"
)

const staleAfter = time.Hour

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore is a single-process Store. Buckets idle for an hour are
// dropped by a background sweep until Close is called.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type MemoryStoreOption func(*memoryStoreOptions)

type memoryStoreOptions struct {
	cleanupInterval time.Duration
	now             func() time.Time
}

// WithCleanupInterval sets how often idle buckets are swept; 0 disables
// the sweep.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(o *memoryStoreOptions) { o.cleanupInterval = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(o *memoryStoreOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	o := memoryStoreOptions{cleanupInterval: 5 * time.Minute, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore{
		buckets: make(map[string]*bucketState),
		now:     o.now,
		stop:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go s.sweep(o.cleanupInterval)
	}
	return s
}

func (s *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucketState{tokens: cfg.Capacity, lastRefill: now}
		s.buckets[key] = b
	}
	b.lastAccess = now

	// Cap the interval count so a long idle bucket cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	if intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals)); intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	remaining := b.tokens - tokens
	if remaining >= 0 {
		b.tokens = remaining
	}
	return remaining, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// Close stops the background sweep. It is safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeStale()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, b := range s.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(s.buckets, key)
		}
	}
}
