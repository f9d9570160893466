package dns

import (
	"fmt"
	"strconv"
	"strings"

	mdns "github.com/miekg/dns"
)

// validationTTL is only used to build a parseable RR line; it is never stored.
const validationTTL = 3600

// ParseRR parses content as the rdata of a record of type t owned by name.
// A non-nil priority is prepended for MX and SRV when content lacks it.
func ParseRR(name string, t Type, content string, priority *int) (mdns.RR, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty content for %s", ErrInvalidContent, t)
	}
	if strings.ContainsAny(content, "\r\n") {
		return nil, fmt.Errorf("%w: content for %s spans multiple lines", ErrInvalidContent, t)
	}
	if !t.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, t)
	}
	if t.HasPriority() && priority != nil && !startsWithNumber(content) {
		content = strconv.Itoa(*priority) + " " + content
	}
	owner := FQDN(name)
	if owner == "" {
		owner = "."
	}
	line := fmt.Sprintf("%s %d IN %s %s", owner, validationTTL, t, content)
	rr, err := mdns.NewRR(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidContent, t, content, err)
	}
	if rr == nil || rr.Header().Rrtype != uint16(t) {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidContent, t, content)
	}
	return rr, nil
}

// NormalizeContent validates content for type t and returns the form that is
// stored. Host name targets (CNAME, NS, PTR) become lowercase and
// dot-terminated; other types are stored as given, trimmed.
func NormalizeContent(name string, t Type, content string, priority *int) (string, error) {
	rr, err := ParseRR(name, t, content, priority)
	if err != nil {
		return "", err
	}
	switch v := rr.(type) {
	case *mdns.CNAME:
		return NormalizeName(v.Target), nil
	case *mdns.NS:
		return NormalizeName(v.Ns), nil
	case *mdns.PTR:
		return NormalizeName(v.Ptr), nil
	}
	return strings.TrimSpace(content), nil
}

// Rdata renders the presentation form of rr without its header.
func Rdata(rr mdns.RR) string {
	return strings.TrimSpace(strings.TrimPrefix(rr.String(), rr.Header().String()))
}

func startsWithNumber(s string) bool {
	field, _, _ := strings.Cut(s, " ")
	_, err := strconv.Atoi(field)
	return err == nil
}
