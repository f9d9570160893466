package resolvers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/helpers"
	"github.com/jroosing/hydrazone/internal/zone"
)

const (
	// DefaultMaxHops bounds the CNAME chain followed from an apex.
	DefaultMaxHops = 10
	// DefaultCacheTTL is how long a resolved target stays cached.
	DefaultCacheTTL = 300 * time.Second

	defaultMinTTL uint32 = 3600
)

// Config controls apex CNAME flattening.
type Config struct {
	Enabled  bool
	MaxHops  int
	CacheTTL time.Duration
}

// Stats are cumulative flattening counters.
type Stats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Resolved   uint64 `json:"resolved"`
	Unresolved uint64 `json:"unresolved"`
	MemoryKeys int    `json:"memory_keys"`
}

// Flattener resolves apex CNAMEs to the address records of their final
// target.
//
// The memory tier is mandatory; the durable tier may be nil. Errors from
// the durable tier are logged and treated as misses.
type Flattener struct {
	lookup  zone.RecordLookup
	memory  *MemoryCache
	durable CacheStore
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time

	hits, misses, resolved, unresolved atomic.Uint64
}

// FlattenerOption customizes a Flattener.
type FlattenerOption func(*Flattener)

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) FlattenerOption {
	return func(f *Flattener) { f.now = now }
}

// WithDurableCache sets the durable cache tier.
func WithDurableCache(c CacheStore) FlattenerOption {
	return func(f *Flattener) { f.durable = c }
}

// NewFlattener creates a Flattener reading records through lookup.
func NewFlattener(lookup zone.RecordLookup, memory *MemoryCache, cfg Config, logger *slog.Logger, opts ...FlattenerOption) *Flattener {
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = DefaultMaxHops
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if memory == nil {
		memory = NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	f := &Flattener{
		lookup: lookup,
		memory: memory,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enabled reports whether flattening is switched on.
func (f *Flattener) Enabled() bool { return f.cfg.Enabled }

// Resolve follows target until it reaches a name with enabled A or AAAA
// records and returns them renamed to source with Flattened set. It
// returns false on a cycle, when the chain exceeds MaxHops, or when a name
// has neither addresses nor a CNAME.
//
// Only the name holding the addresses is cached. CNAME hops are read from
// the store on every call, so a flush of the final name is all it takes to
// refresh every chain ending there.
func (f *Flattener) Resolve(ctx context.Context, source, target string) ([]zone.Record, bool) {
	source = dns.NormalizeName(source)
	key := dns.NormalizeName(target)
	visited := map[string]struct{}{source: {}}

	current := key
	for depth := 1; ; depth++ {
		if depth > f.cfg.MaxHops {
			f.logger.Warn("flattening depth exceeded", "source", source, "target", key, "max_hops", f.cfg.MaxHops)
			f.unresolved.Add(1)
			return nil, false
		}
		if _, seen := visited[current]; seen {
			f.logger.Warn("flattening cycle detected", "source", source, "target", key, "at", current)
			f.unresolved.Add(1)
			return nil, false
		}
		visited[current] = struct{}{}

		if entry, ok := f.cached(ctx, current); ok {
			f.resolved.Add(1)
			return rename(entry.Records, source), true
		}

		records, err := f.lookup.LookupEnabled(ctx, current, dns.TypeA, dns.TypeAAAA, dns.TypeCNAME)
		if err != nil {
			f.logger.Error("flattening lookup failed", "source", source, "name", current, "err", err)
			f.unresolved.Add(1)
			return nil, false
		}

		addrs, next := splitAnswer(records)
		if len(addrs) > 0 {
			entry := f.newEntry(current, addrs)
			f.store(ctx, current, entry)
			f.resolved.Add(1)
			return rename(addrs, source), true
		}
		if next == "" {
			f.logger.Debug("flattening dead end", "source", source, "name", current)
			f.unresolved.Add(1)
			return nil, false
		}
		current = next
	}
}

// FlattenZone returns records with an enabled apex CNAME replaced by the
// addresses it resolves to. Unresolvable apex CNAMEs and every other record
// pass through unchanged.
func (f *Flattener) FlattenZone(ctx context.Context, zoneName string, records []zone.Record) []zone.Record {
	if !f.cfg.Enabled {
		return records
	}
	out := make([]zone.Record, 0, len(records))
	for _, r := range records {
		if r.Type != dns.TypeCNAME || r.Disabled || !r.IsApex(zoneName) {
			out = append(out, r)
			continue
		}
		resolved, ok := f.Resolve(ctx, r.Name, r.Content)
		if !ok {
			out = append(out, r)
			continue
		}
		for _, a := range resolved {
			a.ZoneID = r.ZoneID
			out = append(out, a)
		}
	}
	return out
}

// Flush drops the cached result for name from both tiers and reports how
// many entries were removed.
func (f *Flattener) Flush(ctx context.Context, name string) (int64, error) {
	name = dns.NormalizeName(name)
	removed, _ := f.memory.Delete(ctx, name)
	if f.durable != nil {
		ok, err := f.durable.Delete(ctx, name)
		if err != nil {
			return boolCount(removed), err
		}
		removed = removed || ok
	}
	return boolCount(removed), nil
}

// FlushAll drops every cached result in both tiers and reports how many
// entries were removed. Entries present in both tiers count once.
func (f *Flattener) FlushAll(ctx context.Context) (int64, error) {
	n, _ := f.memory.DeleteAll(ctx)
	if f.durable != nil {
		dn, err := f.durable.DeleteAll(ctx)
		if err != nil {
			return n, err
		}
		n = max(n, dn)
	}
	return n, nil
}

// PurgeExpired removes expired rows from a durable tier that keeps them.
func (f *Flattener) PurgeExpired(ctx context.Context) (int64, error) {
	p, ok := f.durable.(ExpiredPurger)
	if !ok {
		return 0, nil
	}
	return p.PurgeExpired(ctx)
}

// Stats returns a snapshot of the counters.
func (f *Flattener) Stats() Stats {
	return Stats{
		Hits:       f.hits.Load(),
		Misses:     f.misses.Load(),
		Resolved:   f.resolved.Load(),
		Unresolved: f.unresolved.Load(),
		MemoryKeys: f.memory.Len(),
	}
}

var _ CacheInvalidator = (*Flattener)(nil)

// cached checks the memory tier, then the durable tier. A durable hit
// refills memory for the entry's remaining lifetime.
func (f *Flattener) cached(ctx context.Context, key string) (CacheEntry, bool) {
	if entry, ok, _ := f.memory.Get(ctx, key); ok && !entry.Expired(f.now()) {
		f.hits.Add(1)
		return entry, true
	}
	if f.durable != nil {
		entry, ok, err := f.durable.Get(ctx, key)
		if err != nil {
			f.logger.Warn("durable flattening cache read failed", "key", key, "err", err)
		} else if ok && !entry.Expired(f.now()) {
			_ = f.memory.Put(ctx, key, entry, entry.ExpiresAt.Sub(f.now()))
			f.hits.Add(1)
			return entry, true
		}
	}
	f.misses.Add(1)
	return CacheEntry{}, false
}

// store writes entry through both tiers under key.
func (f *Flattener) store(ctx context.Context, key string, entry CacheEntry) {
	ttl := entry.ExpiresAt.Sub(f.now())
	if ttl <= 0 {
		return
	}
	_ = f.memory.Put(ctx, key, entry, ttl)
	if f.durable != nil {
		if err := f.durable.Put(ctx, key, entry, ttl); err != nil {
			f.logger.Warn("durable flattening cache write failed", "key", key, "err", err)
		}
	}
}

func boolCount(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}

func (f *Flattener) newEntry(target string, addrs []zone.Record) CacheEntry {
	ttls := make([]uint32, len(addrs))
	for i, r := range addrs {
		ttls[i] = r.TTL
	}
	return CacheEntry{
		Target:    target,
		Records:   addrs,
		MinTTL:    helpers.MinUint32(defaultMinTTL, ttls...),
		ExpiresAt: f.now().Add(f.cfg.CacheTTL),
	}
}

// splitAnswer separates address records from the CNAME to follow. Only the
// first CNAME counts.
func splitAnswer(records []zone.Record) ([]zone.Record, string) {
	var (
		addrs []zone.Record
		next  string
	)
	for _, r := range records {
		switch {
		case r.Type.IsAddress():
			addrs = append(addrs, zone.Record{Name: r.Name, Type: r.Type, Content: r.Content, TTL: r.TTL})
		case r.Type == dns.TypeCNAME && next == "":
			next = dns.NormalizeName(r.Content)
		}
	}
	return addrs, next
}

func rename(records []zone.Record, owner string) []zone.Record {
	out := make([]zone.Record, len(records))
	for i, r := range records {
		out[i] = zone.Record{Name: owner, Type: r.Type, Content: r.Content, TTL: r.TTL, Flattened: true}
	}
	return out
}
