package zone

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	mdns "github.com/miekg/dns"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/pool"
)

var exportBuffers = pool.NewWithReset(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	func(b *bytes.Buffer) { b.Reset() },
)

// ParseText parses BIND zone-file text relative to origin. Records without
// an explicit TTL get defaultTTL. Every owner must lie within origin and
// every type must be one the API stores.
func ParseText(origin, text string, defaultTTL uint32) ([]Record, error) {
	origin = dns.FQDN(origin)
	zp := mdns.NewZoneParser(strings.NewReader(text), origin, "")
	zp.SetDefaultTTL(defaultTTL)

	var out []Record
	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		hdr := rr.Header()
		name := dns.NormalizeName(hdr.Name)
		typ := dns.Type(hdr.Rrtype)
		if !typ.Supported() {
			return nil, &ValidationError{Name: name, Type: typ.String(), Message: "record type is not supported"}
		}
		if !dns.InZone(name, origin) {
			return nil, &ValidationError{Name: name, Type: typ.String(), Message: "Name is out of zone"}
		}
		content, err := dns.NormalizeContent(name, typ, dns.Rdata(rr), nil)
		if err != nil {
			return nil, &ValidationError{Name: name, Type: typ.String(), Message: err.Error()}
		}
		ttl := hdr.Ttl
		if ttl == 0 {
			ttl = defaultTTL
		}
		out = append(out, Record{Name: name, Type: typ, Content: content, TTL: ttl})
	}
	if err := zp.Err(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid zone file: %v", err)}
	}
	return out, nil
}

// PresentationContent returns the rdata as it appears in a zone file,
// prefixing the priority for MX and SRV records that store it separately.
func PresentationContent(r Record) string {
	if r.Type.HasPriority() && r.Priority != nil {
		field, _, _ := strings.Cut(r.Content, " ")
		if _, err := strconv.Atoi(field); err != nil {
			return strconv.Itoa(*r.Priority) + " " + r.Content
		}
	}
	return r.Content
}

// WriteText renders z and its records as a BIND zone file. Disabled records
// are written as comments.
func WriteText(w io.Writer, z *Zone, records []Record) error {
	buf := exportBuffers.Get()
	defer exportBuffers.Put(buf)

	fmt.Fprintf(buf, "$ORIGIN %s\n", dns.FQDN(z.Name))
	for _, set := range GroupRRsets(records) {
		for _, rec := range set.Records {
			prefix := ""
			if rec.Disabled {
				prefix = "; "
			}
			content := PresentationContent(Record{Type: set.Type, Content: rec.Content, Priority: rec.Priority})
			fmt.Fprintf(buf, "%s%s\t%d\tIN\t%s\t%s\n", prefix, set.Name, set.TTL, set.Type, content)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
