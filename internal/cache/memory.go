package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache in process memory. Expired entries are
// dropped lazily on read.
type MemoryCache struct {
	mu   sync.Mutex
	now  func() time.Time
	data map[string]cacheItem
}

type cacheItem struct {
	value      []byte
	expiration time.Time
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now, data: map[string]cacheItem{}}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !item.expiration.IsZero() && !m.now().Before(item.expiration) {
		delete(m.data, key)
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set stores value; a non-positive ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := cacheItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiration = m.now().Add(ttl)
	}
	m.data[key] = item
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
