package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	expiresAt time.Time // zero = never
	value     V
}

// Memory is an in-process cache. Expired entries are dropped on access.
type Memory[V any] struct {
	items      map[string]memoryEntry[V]
	now        func() time.Time
	defaultTTL time.Duration
	mu         sync.Mutex
	closed     bool
}

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	now        func() time.Time
	defaultTTL time.Duration
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.defaultTTL = d
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemory creates an empty in-memory cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := &memoryConfig{defaultTTL: time.Hour, now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Memory[V]{
		items:      make(map[string]memoryEntry[V]),
		now:        cfg.now,
		defaultTTL: cfg.defaultTTL,
	}
}

// Get implements Cache.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.items, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Set implements Cache.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}
	m.items[key] = memoryEntry[V]{value: value, expiresAt: expiresAt}
	return nil
}

// Delete implements Cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Close drops all entries. Further calls return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	clear(m.items)
	return nil
}

var _ Cache[any] = (*Memory[any])(nil)
