// Package resolvers provides CNAME flattening for HydraZone.
//
// Architecture:
//
// A zone apex cannot hold a CNAME next to its SOA and NS records on the
// wire, so zones that alias their apex are presented with the address
// records the alias finally points to. The Flattener follows the CNAME
// chain through the record store:
//
//  1. Check the memory tier, then the durable tier, for the current target
//  2. Return the enabled A/AAAA records of the target if it has any
//  3. Otherwise follow the target's enabled CNAME, one hop at a time
//  4. Give up on a cycle, after MaxHops hops, or at a dead end
//
// Caching Strategy:
//
// Entries are keyed by the normalized name that holds the address records
// and keep the records' original owner names, so every zone whose chain
// ends at the same name shares one entry. Intermediate CNAME hops are never
// cached. Records are renamed to the apex on each read.
// The memory tier (go-cache) is process-local; the durable tier (SQLite or
// Redis) survives restarts and carries an explicit expiry.
package resolvers

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// CacheEntry is a resolved flattening target.
type CacheEntry struct {
	Target    string
	Records   []zone.Record
	MinTTL    uint32
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer valid at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// CacheStore is one tier of the flattening cache.
//
// Get returns found=false for missing and expired entries.
type CacheStore interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Put(ctx context.Context, key string, entry CacheEntry, ttl time.Duration) error
	// Delete reports whether an entry was removed.
	Delete(ctx context.Context, key string) (bool, error)
	// DeleteAll returns the number of entries removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// ExpiredPurger is implemented by durable tiers that keep expired rows
// until they are purged.
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CacheInvalidator drops flattening results for one name or for all names.
// Callers that mutate records use it to request fresh resolution.
type CacheInvalidator interface {
	Flush(ctx context.Context, name string) (int64, error)
	FlushAll(ctx context.Context) (int64, error)
}

// cachedRecord is the serialized form of a cached address record.
type cachedRecord struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	TTL     uint32 `json:"ttl"`
}

// cachedEntry is the serialized form of a CacheEntry.
type cachedEntry struct {
	Target    string         `json:"target"`
	Records   []cachedRecord `json:"records"`
	MinTTL    uint32         `json:"min_ttl"`
	ExpiresAt int64          `json:"expires_at"`
}

func toCached(records []zone.Record) []cachedRecord {
	out := make([]cachedRecord, len(records))
	for i, r := range records {
		out[i] = cachedRecord{Name: r.Name, Type: r.Type.String(), Content: r.Content, TTL: r.TTL}
	}
	return out
}

func fromCached(in []cachedRecord) ([]zone.Record, error) {
	records := make([]zone.Record, 0, len(in))
	for _, c := range in {
		t, err := dns.ParseType(c.Type)
		if err != nil {
			return nil, err
		}
		records = append(records, zone.Record{Name: c.Name, Type: t, Content: c.Content, TTL: c.TTL})
	}
	return records, nil
}

// EncodeRecords serializes cached records for a durable tier.
func EncodeRecords(records []zone.Record) ([]byte, error) {
	return json.Marshal(toCached(records))
}

// DecodeRecords reverses EncodeRecords.
func DecodeRecords(data []byte) ([]zone.Record, error) {
	var in []cachedRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return fromCached(in)
}

// EncodeEntry serializes a whole entry, expiry included.
func EncodeEntry(e CacheEntry) ([]byte, error) {
	var expires int64
	if !e.ExpiresAt.IsZero() {
		expires = e.ExpiresAt.Unix()
	}
	return json.Marshal(cachedEntry{Target: e.Target, Records: toCached(e.Records), MinTTL: e.MinTTL, ExpiresAt: expires})
}

// DecodeEntry reverses EncodeEntry.
func DecodeEntry(data []byte) (CacheEntry, error) {
	var c cachedEntry
	if err := json.Unmarshal(data, &c); err != nil {
		return CacheEntry{}, err
	}
	records, err := fromCached(c.Records)
	if err != nil {
		return CacheEntry{}, err
	}
	e := CacheEntry{Target: c.Target, Records: records, MinTTL: c.MinTTL}
	if c.ExpiresAt > 0 {
		e.ExpiresAt = time.Unix(c.ExpiresAt, 0)
	}
	return e, nil
}
