package resolvers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// DefaultRedisPrefix namespaces flattening keys in a shared Redis.
const DefaultRedisPrefix = "hydrazone:flatten:"

// RedisCache is a durable flattening tier backed by Redis. Expiry is
// delegated to Redis via SET EX, so no purge is needed.
type RedisCache struct {
	client rueidis.Client
	prefix string
}

var _ CacheStore = (*RedisCache)(nil)

// NewRedisCache wraps an existing rueidis client. An empty prefix uses
// DefaultRedisPrefix.
func NewRedisCache(client rueidis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// DialRedis connects to addr and selects db.
func DialRedis(addr, password string, db int) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
		SelectDB:    db,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisCache) key(k string) string { return r.prefix + k }

func (r *RedisCache) Get(ctx context.Context, key string) (CacheEntry, bool, error) {
	data, err := r.client.Do(ctx, r.client.B().Get().Key(r.key(key)).Build()).AsBytes()
	if rueidis.IsRedisNil(err) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	entry, err := DecodeEntry(data)
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if entry.Expired(time.Now()) {
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

func (r *RedisCache) Put(ctx context.Context, key string, entry CacheEntry, ttl time.Duration) error {
	if ttl < time.Second {
		ttl = time.Second
	}
	data, err := EncodeEntry(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	cmd := r.client.B().Set().Key(r.key(key)).Value(rueidis.BinaryString(data)).Ex(ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Do(ctx, r.client.B().Del().Key(r.key(key)).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	return n > 0, nil
}

// DeleteAll removes every key under the prefix.
func (r *RedisCache) DeleteAll(ctx context.Context) (int64, error) {
	var (
		cursor  uint64
		removed int64
	)
	for {
		entry, err := r.client.Do(ctx, r.client.B().Scan().Cursor(cursor).Match(r.prefix+"*").Count(100).Build()).AsScanEntry()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(entry.Elements) > 0 {
			n, err := r.client.Do(ctx, r.client.B().Del().Key(entry.Elements...).Build()).AsInt64()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += n
		}
		if entry.Cursor == 0 {
			return removed, nil
		}
		cursor = entry.Cursor
	}
}
