// Package rrset implements the RRset mutation engine.
//
// The engine applies an ordered batch of REPLACE/DELETE directives to one
// zone inside a single store transaction. It enforces CNAME exclusivity at
// every owner name, the apex included, and advances the zone serial after a
// successful batch. Any failure rolls the whole batch back.
//
// The engine never invalidates the flattening cache. Callers receive the
// touched owner names in Result and decide what to flush.
package rrset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// DefaultTTL is used when neither the directive nor the configuration
// provides a TTL.
const DefaultTTL uint32 = 3600

// SOADefaults seed the SOA record of newly created zones.
type SOADefaults struct {
	PrimaryNS  string
	Hostmaster string
	Refresh    uint32
	Retry      uint32
	Expire     uint32
	Minimum    uint32
}

// Config controls defaults applied by the engine.
type Config struct {
	DefaultTTL  uint32
	SOA         SOADefaults
	Nameservers []string
}

// DefaultConfig returns the defaults used for zero Config fields.
func DefaultConfig() Config {
	return Config{
		DefaultTTL: DefaultTTL,
		SOA: SOADefaults{
			PrimaryNS:  "ns1.example.com.",
			Hostmaster: "hostmaster.example.com.",
			Refresh:    3600,
			Retry:      1800,
			Expire:     604800,
			Minimum:    86400,
		},
		Nameservers: []string{"ns1.example.com.", "ns2.example.com."},
	}
}

// Engine applies RRset change batches to zones.
type Engine struct {
	store  zone.Store
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for serials.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine over store.
func New(store zone.Store, cfg Config, logger *slog.Logger, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = def.DefaultTTL
	}
	if cfg.SOA == (SOADefaults{}) {
		cfg.SOA = def.SOA
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{store: store, cfg: cfg, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result describes a committed batch.
type Result struct {
	Zone    *zone.Zone
	Serial  uint32
	Touched []string
}

// Apply validates changes, then applies them in order to the zone named
// zoneName in one transaction and advances the zone serial.
//
// Errors: *zone.ValidationError, *zone.ConflictError, zone.ErrNotFound, or
// *zone.StoreError.
func (e *Engine) Apply(ctx context.Context, zoneName string, changes []zone.Change) (Result, error) {
	zoneName = dns.FQDN(zoneName)
	validated, err := validateChanges(zoneName, changes, e.cfg.DefaultTTL)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = e.withTx(ctx, func(tx zone.Tx) error {
		z, err := tx.GetZone(ctx, zoneName)
		if err != nil {
			return zone.WrapStore("get zone", err)
		}
		for _, c := range validated {
			if err := e.applyChange(ctx, tx, z, c); err != nil {
				return err
			}
		}

		current, err := currentSerial(ctx, tx, z)
		if err != nil {
			return err
		}
		next := zone.NextSerial(current, e.now())
		if err := writeSerial(ctx, tx, z, next); err != nil {
			return err
		}

		res = Result{Zone: z, Serial: next, Touched: touchedNames(validated)}
		return nil
	})
	if err != nil {
		if IsClientError(err) {
			e.logger.Warn("rrset batch rejected", "zone", zoneName, "changes", len(changes), "err", err)
		} else {
			e.logger.Error("rrset batch failed", "zone", zoneName, "changes", len(changes), "err", err)
		}
		return Result{}, err
	}

	e.logger.Info("rrset batch applied", "zone", res.Zone.Name, "changes", len(validated), "serial", res.Serial)
	return res, nil
}

// withTx runs fn in a transaction, committing on success and rolling back
// otherwise.
func (e *Engine) withTx(ctx context.Context, fn func(tx zone.Tx) error) error {
	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return zone.WrapStore("begin", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.Error("rollback failed", "err", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return zone.WrapStore("commit", err)
	}
	committed = true
	return nil
}

// applyChange applies one validated directive against the in-transaction
// state, so it observes the effects of earlier directives.
func (e *Engine) applyChange(ctx context.Context, tx zone.Tx, z *zone.Zone, c change) error {
	if c.kind == zone.ChangeDelete {
		if _, err := tx.DeleteRecords(ctx, z.ID, c.name, c.typ); err != nil {
			return zone.WrapStore("delete records", err)
		}
		return nil
	}

	existing, err := tx.GetRecords(ctx, z.ID, c.name, 0)
	if err != nil {
		return zone.WrapStore("get records", err)
	}
	if conflicts(existing, c.typ) {
		return &zone.ConflictError{Name: c.name, Type: c.typ.String()}
	}

	if _, err := tx.DeleteRecords(ctx, z.ID, c.name, c.typ); err != nil {
		return zone.WrapStore("delete records", err)
	}
	for _, r := range c.records {
		rec := zone.Record{
			Name:     c.name,
			Type:     c.typ,
			Content:  r.Content,
			TTL:      c.ttl,
			Disabled: r.Disabled,
			Priority: r.Priority,
		}
		if _, err := tx.InsertRecord(ctx, z.ID, rec); err != nil {
			return zone.WrapStore("insert record", err)
		}
	}
	return nil
}

// conflicts reports whether writing typ next to existing records would put
// a CNAME beside any other type. Records of typ itself are about to be
// replaced and are ignored. Disabled records count.
func conflicts(existing []zone.Record, typ dns.Type) bool {
	for _, r := range existing {
		if r.Type == typ {
			continue
		}
		if r.Type == dns.TypeCNAME || typ == dns.TypeCNAME {
			return true
		}
	}
	return false
}

// currentSerial is the larger of the zone row serial and the SOA serial.
func currentSerial(ctx context.Context, tx zone.Tx, z *zone.Zone) (uint32, error) {
	current := z.Serial
	soas, err := tx.GetRecords(ctx, z.ID, z.Name, dns.TypeSOA)
	if err != nil {
		return 0, zone.WrapStore("get soa", err)
	}
	for _, r := range soas {
		soa, err := dns.ParseSOA(r.Content)
		if err != nil {
			continue
		}
		if soa.Serial > current {
			current = soa.Serial
		}
	}
	return current, nil
}

// writeSerial stores serial on the zone row and rewrites the SOA record
// content, delete-then-insert, with the new serial.
func writeSerial(ctx context.Context, tx zone.Tx, z *zone.Zone, serial uint32) error {
	if err := tx.UpdateSerial(ctx, z.ID, serial); err != nil {
		return zone.WrapStore("update serial", err)
	}
	z.Serial = serial

	soas, err := tx.GetRecords(ctx, z.ID, z.Name, dns.TypeSOA)
	if err != nil {
		return zone.WrapStore("get soa", err)
	}
	if len(soas) == 0 {
		return nil
	}

	rewritten := make([]zone.Record, 0, len(soas))
	for _, r := range soas {
		soa, err := dns.ParseSOA(r.Content)
		if err != nil {
			return zone.WrapStore("parse soa", fmt.Errorf("stored SOA %q: %w", r.Content, err))
		}
		soa.Serial = serial
		r.Content = soa.String()
		rewritten = append(rewritten, r)
	}

	if _, err := tx.DeleteRecords(ctx, z.ID, z.Name, dns.TypeSOA); err != nil {
		return zone.WrapStore("delete soa", err)
	}
	for _, r := range rewritten {
		if _, err := tx.InsertRecord(ctx, z.ID, r); err != nil {
			return zone.WrapStore("insert soa", err)
		}
	}
	return nil
}

func touchedNames(changes []change) []string {
	seen := make(map[string]struct{}, len(changes))
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		if _, ok := seen[c.name]; ok {
			continue
		}
		seen[c.name] = struct{}{}
		names = append(names, c.name)
	}
	return names
}

// IsClientError reports whether err was caused by the request rather than
// by the store.
func IsClientError(err error) bool {
	var ve *zone.ValidationError
	var ce *zone.ConflictError
	return errors.As(err, &ve) || errors.As(err, &ce) || errors.Is(err, zone.ErrNotFound) || errors.Is(err, zone.ErrZoneExists)
}
