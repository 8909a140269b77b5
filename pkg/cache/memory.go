package cache

import (
	"context"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements Store in-process using go-cache.
type MemoryCache struct {
	c        *gocache.Cache
	maxItems int
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxItems:        1000,
		DefaultTTL:      5 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryCache{
		c:        gocache.New(cfg.DefaultTTL, cfg.CleanupInterval),
		maxItems: cfg.MaxItems,
	}
}

func (mc *MemoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := mc.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

func (mc *MemoryCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if mc.maxItems > 0 && mc.c.ItemCount() >= mc.maxItems {
		mc.c.DeleteExpired()
		if mc.c.ItemCount() >= mc.maxItems {
			mc.evictSoonest()
		}
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	// copy so callers can't mutate what we hold
	buf := make([]byte, len(value))
	copy(buf, value)
	mc.c.Set(key, buf, ttl)
	return nil
}

// Len reports the number of live entries (expired but not yet swept ones included).
func (mc *MemoryCache) Len() int {
	return mc.c.ItemCount()
}

// evictSoonest drops the entry closest to expiry.
func (mc *MemoryCache) evictSoonest() {
	var (
		victim string
		soon   int64 = math.MaxInt64
	)
	for k, item := range mc.c.Items() {
		exp := item.Expiration
		if exp <= 0 {
			exp = math.MaxInt64
		}
		if victim == "" || exp < soon {
			victim, soon = k, exp
		}
	}
	if victim != "" {
		mc.c.Delete(victim)
	}
}

// Close flushes all entries.
func (mc *MemoryCache) Close() error {
	mc.c.Flush()
	return nil
}
