// Package redis opens go-redis clients from connection URLs.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithRetry(3, time.Second))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Both redis:// and rediss:// (TLS) schemes are accepted. Open pings the
// server and retries with linear backoff before giving up.
package redis
