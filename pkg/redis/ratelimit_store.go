package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
)

// tokenBucketScript refills and consumes in one round trip. State is a hash
// of tokens and the last refill time in milliseconds. A denied request
// leaves the stored tokens unchanged.
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local take = tonumber(ARGV[4])
local now = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local refill = tonumber(state[2])
if tokens == nil or refill == nil then
	tokens = capacity
	refill = now
end

local intervals = math.floor((now - refill) / interval)
if intervals > 0 then
	tokens = math.min(tokens + intervals * rate, capacity)
	refill = now
end

local remaining = tokens - take
if remaining >= 0 then
	tokens = remaining
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', refill)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, refill + interval}
`)

// RateLimitStore is a ratelimiter.Store shared by every instance that
// talks to the same Redis.
type RateLimitStore struct {
	db     redis.UniversalClient
	prefix string
}

func NewRateLimitStore(client redis.UniversalClient, prefix string) *RateLimitStore {
	return &RateLimitStore{db: client, prefix: prefix}
}

func (s *RateLimitStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg ratelimiter.Config) (int, time.Time, error) {
	interval := cfg.RefillInterval.Milliseconds()
	// A bucket is full again after capacity/rate intervals; keep it a
	// little longer than that.
	ttl := (int64(cfg.Capacity/cfg.RefillRate) + 2) * interval

	res, err := tokenBucketScript.Run(ctx, s.db, []string{s.prefix + key},
		cfg.Capacity, cfg.RefillRate, interval, tokens, time.Now().UnixMilli(), ttl,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (s *RateLimitStore) Reset(ctx context.Context, key string) error {
	return s.db.Del(ctx, s.prefix+key).Err()
}

var _ ratelimiter.Store = (*RateLimitStore)(nil)
