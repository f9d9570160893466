// Package zone defines the zone and record model shared by the store, the
// RRset mutation engine, the flattening resolver and the HTTP layer.
//
// It also owns the error taxonomy, SOA serial arithmetic, RRset grouping for
// presentation, and BIND zone-file import/export.
package zone

import (
	"fmt"
	"strings"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
)

// Kind is the replication role of a zone.
type Kind string

const (
	KindNative Kind = "Native"
	KindMaster Kind = "Master"
	KindSlave  Kind = "Slave"
)

// ParseKind accepts a kind case-insensitively. An empty string means Native.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return KindNative, nil
	case "master":
		return KindMaster, nil
	case "slave":
		return KindSlave, nil
	}
	return "", fmt.Errorf("unsupported zone kind %q", s)
}

// Zone is a DNS zone. Name is dot-terminated with its case preserved;
// lookups compare it case-insensitively.
type Zone struct {
	ID             int64
	Name           string
	Kind           Kind
	Serial         uint32
	NotifiedSerial uint32
	Account        string
	Masters        []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Record is a single stored resource record.
type Record struct {
	ID       int64
	ZoneID   int64
	Name     string // dot-terminated, lowercase
	Type     dns.Type
	Content  string
	TTL      uint32
	Disabled bool
	Priority *int

	// Flattened marks address records produced by apex CNAME flattening.
	// It is never persisted.
	Flattened bool
}

// IsApex reports whether the record is owned by the zone apex.
func (r Record) IsApex(zoneName string) bool {
	return dns.EqualNames(r.Name, zoneName)
}

// ChangeKind is the changetype of an RRset change directive.
type ChangeKind string

const (
	ChangeReplace ChangeKind = "REPLACE"
	ChangeDelete  ChangeKind = "DELETE"
)

// ParseChangeKind accepts a changetype case-insensitively.
func ParseChangeKind(s string) (ChangeKind, error) {
	switch ChangeKind(strings.ToUpper(strings.TrimSpace(s))) {
	case ChangeReplace:
		return ChangeReplace, nil
	case ChangeDelete:
		return ChangeDelete, nil
	}
	return "", fmt.Errorf("unsupported changetype %q", s)
}

// ChangeRecord is one record of a REPLACE directive.
type ChangeRecord struct {
	Content  string
	Disabled bool
	Priority *int
}

// Change is an RRset change directive. TTL nil means the configured default.
type Change struct {
	Name    string
	Type    dns.Type
	TTL     *uint32
	Kind    ChangeKind
	Records []ChangeRecord
}
