package zone_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Serial
// =============================================================================

func TestNextSerial(t *testing.T) {
	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current uint32
		want    uint32
	}{
		{name: "older day resets", current: 2024031405, want: 2024031501},
		{name: "zero resets", current: 0, want: 2024031501},
		{name: "today 00", current: 2024031500, want: 2024031501},
		{name: "same day increments", current: 2024031501, want: 2024031502},
		{name: "future serial increments", current: 2024040101, want: 2024040102},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zone.NextSerial(tt.current, today))
		})
	}
}

func TestNextSerial_RepeatedSameDayIsStrictlyIncreasing(t *testing.T) {
	today := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	serial := uint32(2023123199)
	for i := 1; i <= 20; i++ {
		next := zone.NextSerial(serial, today)
		if i == 1 {
			assert.Equal(t, uint32(2024031501), next)
		} else {
			assert.Equal(t, serial+1, next)
		}
		serial = next
	}
}

func TestInitialSerial(t *testing.T) {
	assert.Equal(t, uint32(2024123101), zone.InitialSerial(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
}

// =============================================================================
// Errors
// =============================================================================

func TestConflictError_Message(t *testing.T) {
	err := &zone.ConflictError{Name: "example.com.", Type: "CNAME"}
	assert.Equal(t, "RRset example.com. IN CNAME: Conflicts with pre-existing RRset", err.Error())
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "RRset www.example.org. IN A: Name is out of zone",
		(&zone.ValidationError{Name: "www.example.org.", Type: "A", Message: "Name is out of zone"}).Error())
	assert.Equal(t, "no rrsets", (&zone.ValidationError{Message: "no rrsets"}).Error())
}

func TestWrapStore(t *testing.T) {
	assert.NoError(t, zone.WrapStore("op", nil))

	err := zone.WrapStore("get zone", fmt.Errorf("lookup: %w", zone.ErrNotFound))
	assert.ErrorIs(t, err, zone.ErrNotFound)
	var se *zone.StoreError
	assert.False(t, errors.As(err, &se))

	cause := errors.New("disk I/O error")
	err = zone.WrapStore("insert record", cause)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "insert record", se.Op)
	assert.ErrorIs(t, err, cause)
}

func TestParseKind(t *testing.T) {
	k, err := zone.ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, zone.KindNative, k)

	k, err = zone.ParseKind("master")
	require.NoError(t, err)
	assert.Equal(t, zone.KindMaster, k)

	_, err = zone.ParseKind("Producer")
	assert.Error(t, err)
}

func TestParseChangeKind(t *testing.T) {
	k, err := zone.ParseChangeKind("replace")
	require.NoError(t, err)
	assert.Equal(t, zone.ChangeReplace, k)

	_, err = zone.ParseChangeKind("PATCH")
	assert.Error(t, err)
}

// =============================================================================
// RRset grouping
// =============================================================================

func TestGroupRRsets(t *testing.T) {
	prio := 10
	records := []zone.Record{
		{Name: "www.example.com.", Type: dns.TypeA, Content: "192.0.2.1", TTL: 300},
		{Name: "example.com.", Type: dns.TypeNS, Content: "ns1.example.com.", TTL: 3600},
		{Name: "www.example.com.", Type: dns.TypeA, Content: "192.0.2.2", TTL: 60, Disabled: true},
		{Name: "example.com.", Type: dns.TypeSOA, Content: "ns1.example.com. hostmaster.example.com. 1 2 3 4 5", TTL: 3600},
		{Name: "example.com.", Type: dns.TypeMX, Content: "mail.example.com.", TTL: 3600, Priority: &prio},
	}

	sets := zone.GroupRRsets(records)
	require.Len(t, sets, 4)

	assert.Equal(t, dns.TypeSOA, sets[0].Type)
	assert.Equal(t, dns.TypeNS, sets[1].Type)
	assert.Equal(t, dns.TypeMX, sets[2].Type)
	assert.Equal(t, "www.example.com.", sets[3].Name)
	assert.Equal(t, uint32(60), sets[3].TTL, "rrset TTL is the lowest member TTL")
	require.Len(t, sets[3].Records, 2)
	assert.True(t, sets[3].Records[1].Disabled)
}

func TestGroupRRsets_CarriesFlattenedFlag(t *testing.T) {
	sets := zone.GroupRRsets([]zone.Record{
		{Name: "example.com.", Type: dns.TypeA, Content: "1.2.3.4", TTL: 300, Flattened: true},
	})
	require.Len(t, sets, 1)
	assert.True(t, sets[0].Flattened)
}

// =============================================================================
// BIND import/export
// =============================================================================

func TestParseText(t *testing.T) {
	records, err := zone.ParseText("example.com.", `
$TTL 600
@       IN  A     192.0.2.1
www 300 IN  CNAME Example.COM.
mail    IN  MX    10 mail.example.com.
`, 3600)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "example.com.", records[0].Name)
	assert.Equal(t, uint32(600), records[0].TTL)
	assert.Equal(t, "www.example.com.", records[1].Name)
	assert.Equal(t, "example.com.", records[1].Content)
	assert.Equal(t, uint32(300), records[1].TTL)
	assert.Equal(t, "10 mail.example.com.", records[2].Content)
}

func TestParseText_DefaultTTL(t *testing.T) {
	records, err := zone.ParseText("example.com", "@ IN A 192.0.2.1\n", 1800)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint32(1800), records[0].TTL)
}

func TestParseText_Errors(t *testing.T) {
	_, err := zone.ParseText("example.com.", "other.org. 300 IN A 192.0.2.1\n", 3600)
	var ve *zone.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name is out of zone", ve.Message)

	_, err = zone.ParseText("example.com.", "@ 300 IN HINFO \"cpu\" \"os\"\n", 3600)
	require.ErrorAs(t, err, &ve)

	_, err = zone.ParseText("example.com.", "@ 300 IN A not-an-ip\n", 3600)
	require.ErrorAs(t, err, &ve)
}

func TestWriteText(t *testing.T) {
	prio := 10
	z := &zone.Zone{Name: "Example.com."}
	records := []zone.Record{
		{Name: "example.com.", Type: dns.TypeA, Content: "192.0.2.1", TTL: 300},
		{Name: "example.com.", Type: dns.TypeMX, Content: "mail.example.com.", TTL: 300, Priority: &prio},
		{Name: "old.example.com.", Type: dns.TypeA, Content: "192.0.2.9", TTL: 300, Disabled: true},
	}

	var buf bytes.Buffer
	require.NoError(t, zone.WriteText(&buf, z, records))

	out := buf.String()
	assert.Contains(t, out, "$ORIGIN Example.com.\n")
	assert.Contains(t, out, "example.com.\t300\tIN\tA\t192.0.2.1\n")
	assert.Contains(t, out, "example.com.\t300\tIN\tMX\t10 mail.example.com.\n")
	assert.Contains(t, out, "; old.example.com.\t300\tIN\tA\t192.0.2.9\n")

	reparsed, err := zone.ParseText("example.com.", out, 3600)
	require.NoError(t, err)
	assert.Len(t, reparsed, 2, "disabled records are exported as comments")
}
