package resolvers

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process flattening cache tier. It is cleared on
// flush and lost on restart.
type MemoryCache struct {
	items *cache.Cache
}

var _ CacheStore = (*MemoryCache)(nil)

// NewMemoryCache creates a memory tier whose entries expire after
// defaultTTL unless Put is given another TTL. Expired items are swept
// every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{items: cache.New(defaultTTL, cleanupInterval)}
}

// Get returns the entry for key if present and not expired.
func (m *MemoryCache) Get(_ context.Context, key string) (CacheEntry, bool, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return CacheEntry{}, false, nil
	}
	entry, ok := v.(CacheEntry)
	if !ok || entry.Expired(time.Now()) {
		m.items.Delete(key)
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Put stores entry for ttl. A non-positive ttl uses the default expiration.
func (m *MemoryCache) Put(_ context.Context, key string, entry CacheEntry, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.items.Set(key, entry, ttl)
	return nil
}

// Delete removes the entry for key. Expired entries still awaiting the
// sweep are removed but not reported.
func (m *MemoryCache) Delete(_ context.Context, key string) (bool, error) {
	_, live := m.items.Get(key)
	m.items.Delete(key)
	return live, nil
}

// DeleteAll removes every entry.
func (m *MemoryCache) DeleteAll(context.Context) (int64, error) {
	n := len(m.items.Items())
	m.items.Flush()
	return int64(n), nil
}

// Len returns the number of cached entries, expired ones included until
// the next sweep.
func (m *MemoryCache) Len() int {
	return m.items.ItemCount()
}
