package dns

import (
	"fmt"
	"strings"

	mdns "github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// FQDN trims surrounding whitespace and guarantees a trailing dot.
// Case is preserved; use NormalizeName for comparisons.
func FQDN(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return mdns.Fqdn(name)
}

// NormalizeName returns the canonical comparison form of an owner name:
// lowercase and dot-terminated. The empty string stays empty.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return mdns.CanonicalName(name)
}

// CanonicalZoneName validates a zone name and returns it dot-terminated with
// its case preserved. Internationalized names are converted to their ASCII
// (punycode) form.
func CanonicalZoneName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: zone name is empty", ErrInvalidName)
	}
	ascii, err := idna.Punycode.ToASCII(strings.TrimSuffix(name, "."))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidName, name, err)
	}
	fqdn := mdns.Fqdn(ascii)
	if _, ok := mdns.IsDomainName(fqdn); !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	return fqdn, nil
}

// ValidateOwnerName checks that name is a syntactically valid domain name.
func ValidateOwnerName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if _, ok := mdns.IsDomainName(name); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	return nil
}

// InZone reports whether name is equal to or below the zone apex.
// Both arguments are compared case-insensitively.
func InZone(name, zone string) bool {
	return mdns.IsSubDomain(NormalizeName(zone), NormalizeName(name))
}

// EqualNames compares two names case-insensitively, ignoring a trailing dot.
func EqualNames(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
