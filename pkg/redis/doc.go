// Package redis connects to Redis with go-redis and backs the stores that
// must be shared between instances: visitor language preferences and rate
// limit buckets.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	prefs := redis.NewPreferenceStore(client, cfg.KeyPrefix, cfg.PreferenceTTL)
//	limits := redis.NewRateLimitStore(client, cfg.RateLimitPrefix)
//
// Healthcheck adapts the client to an httpserver.Check for readiness probes.
package redis
