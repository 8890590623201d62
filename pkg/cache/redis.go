package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis cache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix     string
	defaultTTL time.Duration
}

// WithPrefix namespaces keys as "{prefix}:{key}". A trailing colon is ignored.
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = strings.TrimRight(prefix, ":")
	}
}

// WithRedisDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.defaultTTL = d
	}
}

// Redis is a cache backed by Redis. Values are serialized with the
// configured Marshaler (JSON by default).
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	config    redisConfig
}

// NewRedis creates a Redis-backed cache. The client lifecycle stays with the caller.
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	cfg := redisConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Redis[V]{client: client, marshaler: m, config: cfg}
}

// Get implements Cache.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

// Set implements Cache.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.config.defaultTTL
	}
	// Redis treats 0 as "no expiration".
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete implements Cache.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the client is closed by its owner.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.config.prefix == "" {
		return key
	}
	return r.config.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
