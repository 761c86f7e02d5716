package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service is the key-value store behind screener results and wizard
// sessions. Values are stored as JSON; strings and bytes are stored raw.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	// DeleteByPattern removes every key matching a glob such as "screener:*".
	DeleteByPattern(ctx context.Context, pattern string) error
	// TryLock sets key only if absent; the lock lapses after ttl.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

var (
	_ Service = (*MemoryCache)(nil)
	_ Service = (*RedisCache)(nil)
	_ Service = (*LayeredCache)(nil)
)
