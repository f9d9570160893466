package dns_test

import (
	"testing"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Record types
// =============================================================================

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    dns.Type
		wantErr bool
	}{
		{in: "A", want: dns.TypeA},
		{in: "aaaa", want: dns.TypeAAAA},
		{in: " CNAME ", want: dns.TypeCNAME},
		{in: "MX", want: dns.TypeMX},
		{in: "CAA", want: dns.TypeCAA},
		{in: "", wantErr: true},
		{in: "BOGUS", wantErr: true},
		{in: "DNSKEY", wantErr: true}, // known to miekg, not stored here
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dns.ParseType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, dns.ErrInvalidType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "CNAME", dns.TypeCNAME.String())
	assert.Equal(t, "TYPE65280", dns.Type(65280).String())
}

func TestType_Predicates(t *testing.T) {
	assert.True(t, dns.TypeA.IsAddress())
	assert.True(t, dns.TypeAAAA.IsAddress())
	assert.False(t, dns.TypeCNAME.IsAddress())
	assert.True(t, dns.TypeMX.HasPriority())
	assert.False(t, dns.TypeTXT.HasPriority())
}

// =============================================================================
// Names
// =============================================================================

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "example.com.", dns.NormalizeName("Example.COM"))
	assert.Equal(t, "www.example.com.", dns.NormalizeName(" www.example.com. "))
	assert.Equal(t, "", dns.NormalizeName("  "))
}

func TestFQDN_PreservesCase(t *testing.T) {
	assert.Equal(t, "Example.com.", dns.FQDN("Example.com"))
}

func TestCanonicalZoneName(t *testing.T) {
	got, err := dns.CanonicalZoneName("Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Example.com.", got)

	got, err = dns.CanonicalZoneName("bücher.example")
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example.", got)

	_, err = dns.CanonicalZoneName("")
	require.ErrorIs(t, err, dns.ErrInvalidName)

	_, err = dns.CanonicalZoneName(".")
	require.ErrorIs(t, err, dns.ErrInvalidName)
}

func TestInZone(t *testing.T) {
	assert.True(t, dns.InZone("example.com.", "example.com."))
	assert.True(t, dns.InZone("WWW.example.com", "Example.com."))
	assert.False(t, dns.InZone("example.org.", "example.com."))
	assert.False(t, dns.InZone("badexample.com.", "example.com."))
}

// =============================================================================
// Content
// =============================================================================

func TestNormalizeContent(t *testing.T) {
	prio := 10
	tests := []struct {
		name     string
		typ      dns.Type
		content  string
		priority *int
		want     string
		wantErr  bool
	}{
		{name: "a", typ: dns.TypeA, content: "1.2.3.4", want: "1.2.3.4"},
		{name: "a-invalid", typ: dns.TypeA, content: "1.2.3", wantErr: true},
		{name: "a-with-ipv6", typ: dns.TypeA, content: "2001:db8::1", wantErr: true},
		{name: "aaaa", typ: dns.TypeAAAA, content: "2001:db8::1", want: "2001:db8::1"},
		{name: "cname-relative", typ: dns.TypeCNAME, content: "Other.COM", want: "other.com."},
		{name: "cname-fqdn", typ: dns.TypeCNAME, content: "cdn.example.net.", want: "cdn.example.net."},
		{name: "mx-inline-priority", typ: dns.TypeMX, content: "10 mail.example.com.", want: "10 mail.example.com."},
		{name: "mx-separate-priority", typ: dns.TypeMX, content: "mail.example.com.", priority: &prio, want: "mail.example.com."},
		{name: "mx-missing-priority", typ: dns.TypeMX, content: "mail.example.com.", wantErr: true},
		{name: "txt", typ: dns.TypeTXT, content: `"v=spf1 -all"`, want: `"v=spf1 -all"`},
		{name: "empty", typ: dns.TypeTXT, content: "  ", wantErr: true},
		{name: "soa", typ: dns.TypeSOA, content: "ns1.example.com. hostmaster.example.com. 2024010101 3600 1800 604800 86400", want: "ns1.example.com. hostmaster.example.com. 2024010101 3600 1800 604800 86400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dns.NormalizeContent("example.com.", tt.typ, tt.content, tt.priority)
			if tt.wantErr {
				require.ErrorIs(t, err, dns.ErrInvalidContent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSOA_RoundTrip(t *testing.T) {
	soa, err := dns.ParseSOA("ns1.example.com. hostmaster.example.com. 2024010101 3600 1800 604800 86400")
	require.NoError(t, err)
	assert.Equal(t, uint32(2024010101), soa.Serial)
	assert.Equal(t, "ns1.example.com.", soa.PrimaryNS)
	assert.Equal(t, uint32(86400), soa.Minimum)

	soa.Serial = 2024010102
	assert.Equal(t, "ns1.example.com. hostmaster.example.com. 2024010102 3600 1800 604800 86400", soa.String())
}
