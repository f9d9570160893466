package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/helpers"
	"github.com/jroosing/hydrazone/internal/resolvers"
)

// FlattenCache is the durable tier of the flattening cache, kept in the
// flatten_cache table. Expired rows are ignored on read and removed by
// PurgeExpired.
type FlattenCache struct {
	db *DB
}

// FlattenCache returns the durable cache tier backed by this database.
func (db *DB) FlattenCache() *FlattenCache {
	return &FlattenCache{db: db}
}

var (
	_ resolvers.CacheStore    = (*FlattenCache)(nil)
	_ resolvers.ExpiredPurger = (*FlattenCache)(nil)
)

// Get returns the cached entry for key unless it is missing or expired.
func (c *FlattenCache) Get(ctx context.Context, key string) (resolvers.CacheEntry, bool, error) {
	var (
		payload   string
		minTTL    int64
		expiresAt int64
	)
	err := c.db.conn.QueryRowContext(ctx,
		`SELECT records, min_ttl, expires_at FROM flatten_cache WHERE target = ? AND expires_at > ?`,
		dns.NormalizeName(key), c.db.now().Unix(),
	).Scan(&payload, &minTTL, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return resolvers.CacheEntry{}, false, nil
	}
	if err != nil {
		return resolvers.CacheEntry{}, false, fmt.Errorf("failed to read flatten cache %s: %w", key, err)
	}

	records, err := resolvers.DecodeRecords([]byte(payload))
	if err != nil {
		return resolvers.CacheEntry{}, false, fmt.Errorf("failed to decode flatten cache %s: %w", key, err)
	}
	return resolvers.CacheEntry{
		Target:    dns.NormalizeName(key),
		Records:   records,
		MinTTL:    helpers.ClampInt64ToUint32(minTTL),
		ExpiresAt: time.Unix(expiresAt, 0),
	}, true, nil
}

// Put stores entry under key, replacing any previous row. When the entry has
// no expiry, ttl from now is used.
func (c *FlattenCache) Put(ctx context.Context, key string, entry resolvers.CacheEntry, ttl time.Duration) error {
	payload, err := resolvers.EncodeRecords(entry.Records)
	if err != nil {
		return fmt.Errorf("failed to encode flatten cache %s: %w", key, err)
	}
	expires := entry.ExpiresAt
	if expires.IsZero() {
		expires = c.db.now().Add(ttl)
	}
	_, err = c.db.conn.ExecContext(ctx, `
		INSERT INTO flatten_cache (target, records, min_ttl, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(target) DO UPDATE SET
			records = excluded.records,
			min_ttl = excluded.min_ttl,
			expires_at = excluded.expires_at
	`, dns.NormalizeName(key), string(payload), entry.MinTTL, expires.Unix())
	if err != nil {
		return fmt.Errorf("failed to write flatten cache %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key and reports whether a row existed.
func (c *FlattenCache) Delete(ctx context.Context, key string) (bool, error) {
	res, err := c.db.conn.ExecContext(ctx,
		`DELETE FROM flatten_cache WHERE target = ?`, dns.NormalizeName(key))
	if err != nil {
		return false, fmt.Errorf("failed to delete flatten cache %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteAll removes every entry and returns how many were removed.
func (c *FlattenCache) DeleteAll(ctx context.Context) (int64, error) {
	res, err := c.db.conn.ExecContext(ctx, `DELETE FROM flatten_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear flatten cache: %w", err)
	}
	return res.RowsAffected()
}

// PurgeExpired removes expired entries and returns how many were removed.
func (c *FlattenCache) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := c.db.conn.ExecContext(ctx,
		`DELETE FROM flatten_cache WHERE expires_at <= ?`, c.db.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge flatten cache: %w", err)
	}
	return res.RowsAffected()
}
