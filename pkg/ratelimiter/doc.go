// Package ratelimiter throttles requests with a token bucket.
//
// A Bucket combines a Config with a Store. MemoryStore keeps state in
// process; the redis package provides a shared store for deployments with
// several instances.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     1,
//		RefillInterval: 3 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, clientip.Key, nil)).Put("/preference", h)
//
// Denied requests do not consume tokens, so a client that keeps retrying
// is admitted again as soon as the bucket refills.
package ratelimiter
