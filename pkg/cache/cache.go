package cache

import (
	"context"
	"time"
)

// Store is the edge-cache primitive: opaque bytes under a key with a per-entry TTL.
// A miss is reported as (nil, false, nil); err is reserved for backend failures.
type Store interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Noop never stores anything. Used when caching is disabled.
type Noop struct{}

func (Noop) GetBytes(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) SetBytes(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Close() error { return nil }
