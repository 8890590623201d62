// Package cache provides a generic Cache interface with in-memory and Redis implementations.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
//
// Use [NewMemory] for a single process and [NewRedis] when several runs
// (or several replicas of the scheduler) should share entries:
//
//	c := cache.NewRedis[[]string](client, nil, cache.WithPrefix("launchdigest"))
//
//	ids, err := cache.GetOrSet(ctx, c, "pads:vandenberg", func(ctx context.Context) ([]string, time.Duration, error) {
//	    ids, err := fetchPads(ctx)
//	    return ids, 24 * time.Hour, err
//	})
//
// [GetOrSet] deduplicates concurrent misses for the same key with singleflight.
package cache
