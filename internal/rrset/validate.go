package rrset

import (
	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

// change is a validated directive with normalized name and content.
type change struct {
	name    string
	typ     dns.Type
	kind    zone.ChangeKind
	ttl     uint32
	records []zone.ChangeRecord
}

func invalid(name string, typ dns.Type, msg string) *zone.ValidationError {
	typeName := ""
	if typ != 0 {
		typeName = typ.String()
	}
	return &zone.ValidationError{Name: name, Type: typeName, Message: msg}
}

// validateChanges checks every directive of a batch against zoneName and
// returns them normalized. It touches no store state.
func validateChanges(zoneName string, changes []zone.Change, defaultTTL uint32) ([]change, error) {
	if len(changes) == 0 {
		return nil, &zone.ValidationError{Message: "No rrsets given"}
	}

	out := make([]change, 0, len(changes))
	for _, c := range changes {
		v, err := validateChange(zoneName, c, defaultTTL)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func validateChange(zoneName string, c zone.Change, defaultTTL uint32) (change, error) {
	name := dns.NormalizeName(c.Name)
	if name == "" {
		return change{}, invalid("", c.Type, "Name is required")
	}
	if err := dns.ValidateOwnerName(name); err != nil {
		return change{}, invalid(name, c.Type, err.Error())
	}
	if c.Type == 0 {
		return change{}, invalid(name, 0, "Type is required")
	}
	if !c.Type.Supported() {
		return change{}, invalid(name, c.Type, "Unsupported record type")
	}
	if !dns.InZone(name, zoneName) {
		return change{}, invalid(name, c.Type, "Name is out of zone")
	}
	if c.Type == dns.TypeSOA && !dns.EqualNames(name, zoneName) {
		return change{}, invalid(name, c.Type, "SOA is only allowed at the zone apex")
	}

	v := change{name: name, typ: c.Type, kind: c.Kind, ttl: defaultTTL}

	switch c.Kind {
	case zone.ChangeDelete:
		return v, nil
	case zone.ChangeReplace:
	default:
		return change{}, invalid(name, c.Type, "Unsupported changetype "+string(c.Kind))
	}

	if c.TTL != nil {
		if *c.TTL == 0 {
			return change{}, invalid(name, c.Type, "TTL must be positive")
		}
		v.ttl = *c.TTL
	}
	if len(c.Records) == 0 {
		return change{}, invalid(name, c.Type, "REPLACE requires at least one record")
	}
	if len(c.Records) > 1 && (c.Type == dns.TypeCNAME || c.Type == dns.TypeSOA) {
		return change{}, invalid(name, c.Type, "Only one record is allowed in a "+c.Type.String()+" RRset")
	}

	seen := make(map[string]struct{}, len(c.Records))
	v.records = make([]zone.ChangeRecord, 0, len(c.Records))
	for _, r := range c.Records {
		content, err := dns.NormalizeContent(name, c.Type, r.Content, r.Priority)
		if err != nil {
			return change{}, invalid(name, c.Type, err.Error())
		}
		if _, dup := seen[content]; dup {
			return change{}, invalid(name, c.Type, "Duplicate record content "+content)
		}
		seen[content] = struct{}{}
		v.records = append(v.records, zone.ChangeRecord{Content: content, Disabled: r.Disabled, Priority: r.Priority})
	}
	return v, nil
}
