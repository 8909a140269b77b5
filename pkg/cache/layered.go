package cache

import (
	"context"
	"time"
)

// LayeredCache implements two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	mem   *MemoryCache
	redis Store
	l1TTL time.Duration
}

// NewLayeredCache creates a layered cache over an L2 store.
func NewLayeredCache(mem *MemoryCache, l2 Store, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{L1TTL: 5 * time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}
	return &LayeredCache{mem: mem, redis: l2, l1TTL: cfg.L1TTL}
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, _ := lc.mem.GetBytes(ctx, key); ok {
		return b, true, nil
	}

	b, ok, err := lc.redis.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	_ = lc.mem.SetBytes(ctx, key, b, lc.l1TTL)
	return b, true, nil
}

func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redis.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	l1 := ttl
	if l1 <= 0 || l1 > lc.l1TTL {
		l1 = lc.l1TTL
	}
	return lc.mem.SetBytes(ctx, key, value, l1)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.redis.Close()
}
