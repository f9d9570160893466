// Package dns provides the DNS vocabulary used by the zone API: record types,
// owner name normalization, and rdata validation.
//
// Parsing and presentation rules come from github.com/miekg/dns so that
// content accepted here is content any standards-compliant server can load.
package dns

import (
	"fmt"
	"strings"

	mdns "github.com/miekg/dns"
)

// Type represents a DNS resource record type accepted by the API.
type Type uint16

const (
	TypeA     Type = Type(mdns.TypeA)     // IPv4 address
	TypeNS    Type = Type(mdns.TypeNS)    // Authoritative name server
	TypeCNAME Type = Type(mdns.TypeCNAME) // Canonical name (alias)
	TypeSOA   Type = Type(mdns.TypeSOA)   // Start of Authority
	TypePTR   Type = Type(mdns.TypePTR)   // Domain name pointer (reverse DNS)
	TypeMX    Type = Type(mdns.TypeMX)    // Mail exchange
	TypeTXT   Type = Type(mdns.TypeTXT)   // Text strings
	TypeAAAA  Type = Type(mdns.TypeAAAA)  // IPv6 address (RFC 3596)
	TypeSRV   Type = Type(mdns.TypeSRV)   // Service locator (RFC 2782)
	TypeCAA   Type = Type(mdns.TypeCAA)   // Certification Authority Authorization (RFC 8659)
)

// supportedTypes is the closed set of types the zone API stores.
var supportedTypes = map[Type]struct{}{
	TypeA:     {},
	TypeNS:    {},
	TypeCNAME: {},
	TypeSOA:   {},
	TypePTR:   {},
	TypeMX:    {},
	TypeTXT:   {},
	TypeAAAA:  {},
	TypeSRV:   {},
	TypeCAA:   {},
}

// ParseType converts a presentation type name ("A", "cname", ...) to a Type.
func ParseType(s string) (Type, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty record type", ErrInvalidType)
	}
	code, ok := mdns.StringToType[s]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidType, s)
	}
	t := Type(code)
	if !t.Supported() {
		return 0, fmt.Errorf("%w: %s is not supported", ErrInvalidType, s)
	}
	return t, nil
}

// MustParseType is ParseType for constants known at compile time.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Supported reports whether the type belongs to the stored set.
func (t Type) Supported() bool {
	_, ok := supportedTypes[t]
	return ok
}

// IsAddress reports whether t is A or AAAA.
func (t Type) IsAddress() bool {
	return t == TypeA || t == TypeAAAA
}

// HasPriority reports whether the rdata of t starts with a priority field.
func (t Type) HasPriority() bool {
	return t == TypeMX || t == TypeSRV
}

// String returns the presentation name of the type.
func (t Type) String() string {
	if s, ok := mdns.TypeToString[uint16(t)]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}
