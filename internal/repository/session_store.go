package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/cache"
)

const (
	sessionKeyPrefix = "session"
	lockTTL          = 10 * time.Second
	lockRetry        = 20 * time.Millisecond
	lockAttempts     = 25
)

// CacheSessionStore keeps wizard sessions in the cache with a sliding TTL.
type CacheSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

var _ domrepo.SessionStore = (*CacheSessionStore)(nil)

func NewCacheSessionStore(c cache.Service, ttl time.Duration) *CacheSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CacheSessionStore{cache: c, ttl: ttl}
}

func (s *CacheSessionStore) key(namespace, id string) string {
	return cache.GenerateKeyWithParams(sessionKeyPrefix, namespace, id)
}

func (s *CacheSessionStore) Save(ctx context.Context, namespace, id string, v interface{}) error {
	if err := s.cache.Set(ctx, s.key(namespace, id), v, s.ttl); err != nil {
		return fmt.Errorf("save %s session: %w", namespace, err)
	}
	return nil
}

func (s *CacheSessionStore) Load(ctx context.Context, namespace, id string, dest interface{}) error {
	err := s.cache.Get(ctx, s.key(namespace, id), dest)
	if errors.Is(err, cache.ErrCacheMiss) {
		return domrepo.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("load %s session: %w", namespace, err)
	}
	return nil
}

// Lock takes the per-session lock, retrying briefly before giving up with
// ErrSessionBusy.
func (s *CacheSessionStore) Lock(ctx context.Context, namespace, id string) (func(), error) {
	key := s.key(namespace, id) + ":lock"
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := s.cache.TryLock(ctx, key, lockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock %s session: %w", namespace, err)
		}
		if ok {
			return func() { _ = s.cache.Unlock(context.Background(), key) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}
	return nil, domrepo.ErrSessionBusy
}
