package rrset_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// memStore is an in-memory zone.Store. A transaction holds the store lock
// from BeginTx until Commit or Rollback and works on a private copy.
type memStore struct {
	mu      sync.Mutex
	zones   map[string]zone.Zone
	records []zone.Record
	nextID  int64

	begins     int
	commits    int
	rollbacks  int
	failInsert error // returned by InsertRecord once set
}

func newMemStore() *memStore {
	return &memStore{zones: map[string]zone.Zone{}}
}

func (s *memStore) addZone(name string, serial uint32, records ...zone.Record) zone.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	z := zone.Zone{ID: s.nextID, Name: dns.FQDN(name), Kind: zone.KindNative, Serial: serial}
	s.zones[dns.NormalizeName(name)] = z
	for _, r := range records {
		s.nextID++
		r.ID = s.nextID
		r.ZoneID = z.ID
		r.Name = dns.NormalizeName(r.Name)
		s.records = append(s.records, r)
	}
	return z
}

// snapshot returns the committed records of a zone in a stable order.
func (s *memStore) snapshot(zoneID int64) []zone.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []zone.Record
	for _, r := range s.records {
		if r.ZoneID == zoneID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) getZone(name string) zone.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zones[dns.NormalizeName(name)]
}

func (s *memStore) BeginTx(context.Context) (zone.Tx, error) {
	s.mu.Lock()
	s.begins++
	tx := &memTx{
		store:   s,
		zones:   make(map[string]zone.Zone, len(s.zones)),
		records: append([]zone.Record(nil), s.records...),
		nextID:  s.nextID,
	}
	for k, v := range s.zones {
		tx.zones[k] = v
	}
	return tx, nil
}

type memTx struct {
	store   *memStore
	zones   map[string]zone.Zone
	records []zone.Record
	nextID  int64
	done    bool
}

func (t *memTx) GetZone(_ context.Context, name string) (*zone.Zone, error) {
	z, ok := t.zones[dns.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", name, zone.ErrNotFound)
	}
	return &z, nil
}

func (t *memTx) CreateZone(_ context.Context, z *zone.Zone) (int64, error) {
	key := dns.NormalizeName(z.Name)
	if _, ok := t.zones[key]; ok {
		return 0, fmt.Errorf("%s: %w", z.Name, zone.ErrZoneExists)
	}
	t.nextID++
	z.ID = t.nextID
	t.zones[key] = *z
	return z.ID, nil
}

func matches(r zone.Record, zoneID int64, name string, typ dns.Type) bool {
	return r.ZoneID == zoneID &&
		(name == "" || r.Name == dns.NormalizeName(name)) &&
		(typ == 0 || r.Type == typ)
}

func (t *memTx) GetRecords(_ context.Context, zoneID int64, name string, typ dns.Type) ([]zone.Record, error) {
	var out []zone.Record
	for _, r := range t.records {
		if matches(r, zoneID, name, typ) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) DeleteRecords(_ context.Context, zoneID int64, name string, typ dns.Type) (int64, error) {
	kept := t.records[:0:0]
	var n int64
	for _, r := range t.records {
		if matches(r, zoneID, name, typ) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	t.records = kept
	return n, nil
}

func (t *memTx) InsertRecord(_ context.Context, zoneID int64, rec zone.Record) (int64, error) {
	if t.store.failInsert != nil {
		return 0, t.store.failInsert
	}
	t.nextID++
	rec.ID = t.nextID
	rec.ZoneID = zoneID
	rec.Name = dns.NormalizeName(rec.Name)
	t.records = append(t.records, rec)
	return rec.ID, nil
}

func (t *memTx) UpdateSerial(_ context.Context, zoneID int64, serial uint32) error {
	for k, z := range t.zones {
		if z.ID == zoneID {
			z.Serial = serial
			t.zones[k] = z
			return nil
		}
	}
	return zone.ErrNotFound
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.New("tx done")
	}
	t.done = true
	t.store.zones = t.zones
	t.store.records = t.records
	t.store.nextID = t.nextID
	t.store.commits++
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.rollbacks++
	t.store.mu.Unlock()
	return nil
}

// typesAt lists the record types stored at name, sorted.
func typesAt(records []zone.Record, name string) []string {
	seen := map[string]bool{}
	for _, r := range records {
		if r.Name == dns.NormalizeName(name) {
			seen[r.Type.String()] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func hasCNAMEConflict(records []zone.Record) string {
	byName := map[string][]string{}
	for _, r := range records {
		byName[r.Name] = append(byName[r.Name], r.Type.String())
	}
	for name, types := range byName {
		joined := strings.Join(types, ",")
		if strings.Contains(joined, "CNAME") && strings.Trim(strings.ReplaceAll(joined, "CNAME", ""), ",") != "" {
			return name
		}
	}
	return ""
}
