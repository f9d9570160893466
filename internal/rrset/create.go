package rrset

import (
	"context"
	"fmt"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// SOAOverride replaces individual SOA defaults for one zone.
type SOAOverride struct {
	PrimaryNS  *string
	Hostmaster *string
	Refresh    *uint32
	Retry      *uint32
	Expire     *uint32
	Minimum    *uint32
}

// CreateRequest describes a new zone.
//
// ZoneText is optional BIND zone-file content imported into the zone.
// RRsets are applied after the seeded and imported records, in order, with
// the same exclusivity rules as Apply.
type CreateRequest struct {
	Name        string
	Kind        zone.Kind
	Account     string
	Masters     []string
	Nameservers []string
	TTL         *uint32
	SOA         *SOAOverride
	RRsets      []zone.Change
	ZoneText    string
}

// CreateZone creates a zone with its SOA and NS records and any imported or
// requested RRsets, all in one transaction. The initial serial is today's
// YYYYMMDD01.
//
// The SOA and NS sets are seeded from configuration unless the zone text or
// the RRsets provide them at the apex.
func (e *Engine) CreateZone(ctx context.Context, req CreateRequest) (*zone.Zone, error) {
	name, err := dns.CanonicalZoneName(req.Name)
	if err != nil {
		return nil, &zone.ValidationError{Name: req.Name, Message: err.Error()}
	}
	kind := req.Kind
	if kind == "" {
		kind = zone.KindNative
	}
	ttl := e.cfg.DefaultTTL
	if req.TTL != nil {
		if *req.TTL == 0 {
			return nil, &zone.ValidationError{Name: name, Message: "TTL must be positive"}
		}
		ttl = *req.TTL
	}

	changes, err := e.importChanges(name, req.ZoneText)
	if err != nil {
		return nil, err
	}
	changes = append(changes, req.RRsets...)

	seed, err := e.seedChanges(name, ttl, req, changes)
	if err != nil {
		return nil, err
	}
	changes = append(seed, changes...)

	validated, err := validateChanges(name, changes, e.cfg.DefaultTTL)
	if err != nil {
		return nil, err
	}

	z := &zone.Zone{
		Name:    name,
		Kind:    kind,
		Serial:  zone.InitialSerial(e.now()),
		Account: req.Account,
		Masters: req.Masters,
	}

	err = e.withTx(ctx, func(tx zone.Tx) error {
		if _, err := tx.CreateZone(ctx, z); err != nil {
			return zone.WrapStore("create zone", err)
		}
		for _, c := range validated {
			if err := e.applyChange(ctx, tx, z, c); err != nil {
				return err
			}
		}
		return writeSerial(ctx, tx, z, z.Serial)
	})
	if err != nil {
		e.logger.Warn("zone creation failed", "zone", name, "err", err)
		return nil, err
	}

	e.logger.Info("zone created", "zone", z.Name, "kind", z.Kind, "serial", z.Serial, "rrsets", len(validated))
	return z, nil
}

// importChanges turns zone-file text into REPLACE directives, one per RRset.
func (e *Engine) importChanges(name, text string) ([]zone.Change, error) {
	if text == "" {
		return nil, nil
	}
	records, err := zone.ParseText(name, text, e.cfg.DefaultTTL)
	if err != nil {
		return nil, err
	}

	sets := zone.GroupRRsets(records)
	changes := make([]zone.Change, 0, len(sets))
	for _, set := range sets {
		ttl := set.TTL
		c := zone.Change{Name: set.Name, Type: set.Type, TTL: &ttl, Kind: zone.ChangeReplace}
		for _, r := range set.Records {
			c.Records = append(c.Records, zone.ChangeRecord{Content: r.Content, Disabled: r.Disabled, Priority: r.Priority})
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// seedChanges returns the SOA and NS directives for the apex that the
// provided changes do not already cover.
func (e *Engine) seedChanges(name string, ttl uint32, req CreateRequest, provided []zone.Change) ([]zone.Change, error) {
	var seed []zone.Change

	if !coversApex(name, dns.TypeSOA, provided) {
		soa := e.soaFor(req.SOA)
		soa.Serial = 0 // rewritten with the initial serial before commit
		seed = append(seed, zone.Change{
			Name: name, Type: dns.TypeSOA, TTL: &ttl, Kind: zone.ChangeReplace,
			Records: []zone.ChangeRecord{{Content: soa.String()}},
		})
	}

	if !coversApex(name, dns.TypeNS, provided) {
		nameservers := req.Nameservers
		if len(nameservers) == 0 {
			nameservers = e.cfg.Nameservers
		}
		if len(nameservers) > 0 {
			ns := zone.Change{Name: name, Type: dns.TypeNS, TTL: &ttl, Kind: zone.ChangeReplace}
			for _, host := range nameservers {
				if _, err := dns.NormalizeContent(name, dns.TypeNS, host, nil); err != nil {
					return nil, &zone.ValidationError{Name: name, Type: "NS", Message: fmt.Sprintf("invalid nameserver %q", host)}
				}
				ns.Records = append(ns.Records, zone.ChangeRecord{Content: host})
			}
			seed = append(seed, ns)
		}
	}
	return seed, nil
}

func (e *Engine) soaFor(o *SOAOverride) dns.SOA {
	d := e.cfg.SOA
	soa := dns.SOA{
		PrimaryNS:  d.PrimaryNS,
		Hostmaster: d.Hostmaster,
		Refresh:    d.Refresh,
		Retry:      d.Retry,
		Expire:     d.Expire,
		Minimum:    d.Minimum,
	}
	if o == nil {
		return soa
	}
	if o.PrimaryNS != nil {
		soa.PrimaryNS = *o.PrimaryNS
	}
	if o.Hostmaster != nil {
		soa.Hostmaster = *o.Hostmaster
	}
	if o.Refresh != nil {
		soa.Refresh = *o.Refresh
	}
	if o.Retry != nil {
		soa.Retry = *o.Retry
	}
	if o.Expire != nil {
		soa.Expire = *o.Expire
	}
	if o.Minimum != nil {
		soa.Minimum = *o.Minimum
	}
	return soa
}

// coversApex reports whether any directive targets (apex, typ).
func coversApex(apex string, typ dns.Type, changes []zone.Change) bool {
	for _, c := range changes {
		if c.Type == typ && dns.EqualNames(c.Name, apex) {
			return true
		}
	}
	return false
}
