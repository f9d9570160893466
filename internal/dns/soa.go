package dns

import (
	"fmt"
	"strings"

	mdns "github.com/miekg/dns"
)

// SOA holds the rdata fields of a start-of-authority record.
type SOA struct {
	PrimaryNS  string
	Hostmaster string
	Serial     uint32
	Refresh    uint32
	Retry      uint32
	Expire     uint32
	Minimum    uint32
}

// ParseSOA parses SOA content in presentation order:
// "primary hostmaster serial refresh retry expire minimum".
func ParseSOA(content string) (SOA, error) {
	rr, err := ParseRR(".", TypeSOA, content, nil)
	if err != nil {
		return SOA{}, err
	}
	soa, ok := rr.(*mdns.SOA)
	if !ok {
		return SOA{}, fmt.Errorf("%w: not an SOA: %q", ErrInvalidContent, content)
	}
	return SOA{
		PrimaryNS:  soa.Ns,
		Hostmaster: soa.Mbox,
		Serial:     soa.Serial,
		Refresh:    soa.Refresh,
		Retry:      soa.Retry,
		Expire:     soa.Expire,
		Minimum:    soa.Minttl,
	}, nil
}

// String renders the SOA back into stored content form.
func (s SOA) String() string {
	return strings.Join([]string{
		FQDN(s.PrimaryNS),
		FQDN(s.Hostmaster),
		fmt.Sprint(s.Serial),
		fmt.Sprint(s.Refresh),
		fmt.Sprint(s.Retry),
		fmt.Sprint(s.Expire),
		fmt.Sprint(s.Minimum),
	}, " ")
}
