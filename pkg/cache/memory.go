package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

// memoryItem stores the JSON encoding of a value, mirroring what Redis holds,
// so Get decodes into any destination type the same way on both backends.
type memoryItem struct {
	data     []byte
	expireAt time.Time
	access   time.Time
}

func (m *memoryItem) expired(now time.Time) bool {
	return !m.expireAt.IsZero() && now.After(m.expireAt)
}

// MemoryCache implements Service in process with LRU eviction.
type MemoryCache struct {
	data    map[string]*memoryItem
	mutex   sync.Mutex
	maxSize int

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache creates an in-memory cache and starts its janitor goroutine.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		maxSize: cfg.MaxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go mc.cleanupExpired(cfg.CleanupInterval)
	return mc
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(value)
	}
}

func decode(data []byte, dest interface{}) error {
	switch d := dest.(type) {
	case *string:
		*d = string(data)
		return nil
	case *[]byte:
		*d = append((*d)[:0], data...)
		return nil
	default:
		return json.Unmarshal(data, dest)
	}
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.setLocked(key, data, expiration)
	return nil
}

func (mc *MemoryCache) setLocked(key string, data []byte, expiration time.Duration) {
	if _, exists := mc.data[key]; !exists && len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}
	now := time.Now()
	item := &memoryItem{data: data, access: now}
	if expiration > 0 {
		item.expireAt = now.Add(expiration)
	}
	mc.data[key] = item
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mutex.Lock()
	item, ok := mc.lookupLocked(key)
	var data []byte
	if ok {
		item.access = time.Now()
		data = item.data
	}
	mc.mutex.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return decode(data, dest)
}

func (mc *MemoryCache) lookupLocked(key string) (*memoryItem, bool) {
	item, ok := mc.data[key]
	if !ok {
		return nil, false
	}
	if item.expired(time.Now()) {
		delete(mc.data, key)
		return nil, false
	}
	return item, true
}

// DeleteByPattern removes keys matching a glob pattern (Redis KEYS syntax subset).
func (mc *MemoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	for key := range mc.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(mc.data, key)
		}
	}
	return nil
}

func (mc *MemoryCache) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	if _, ok := mc.lookupLocked(key); ok {
		return false, nil
	}
	mc.setLocked(key, []byte("locked"), ttl)
	return true, nil
}

func (mc *MemoryCache) Unlock(_ context.Context, key string) error {
	mc.mutex.Lock()
	delete(mc.data, key)
	mc.mutex.Unlock()
	return nil
}

// Len returns the number of live entries.
func (mc *MemoryCache) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldest time.Time
	for key, item := range mc.data {
		if oldestKey == "" || item.access.Before(oldest) {
			oldestKey, oldest = key, item.access
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	defer close(mc.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case now := <-ticker.C:
			mc.mutex.Lock()
			for key, item := range mc.data {
				if item.expired(now) {
					delete(mc.data, key)
				}
			}
			mc.mutex.Unlock()
		}
	}
}

// Close stops the janitor goroutine. Safe to call more than once.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() {
		close(mc.stop)
		<-mc.done
	})
	return nil
}
