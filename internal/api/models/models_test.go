// Package models_test provides behavior tests for the API models package.
package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrazone/internal/api/models"
)

func TestRRSet_WireShape(t *testing.T) {
	prio := 10
	set := models.RRSet{
		Name:    "example.com.",
		Type:    "MX",
		Records: []models.Record{{Content: "mail.example.com.", Priority: &prio}},
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)
	s := string(data)
	assert.NotContains(t, s, `"ttl"`, "ttl is omitted when unset")
	assert.NotContains(t, s, `"changetype"`)
	assert.NotContains(t, s, `"flattened"`)
	assert.Contains(t, s, `"priority":10`)
	assert.Contains(t, s, `"comments":null`)
}

func TestZonePatchRequest_DistinguishesMissingRRsets(t *testing.T) {
	var missing models.ZonePatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Nil(t, missing.RRsets)

	var empty models.ZonePatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rrsets":[]}`), &empty))
	require.NotNil(t, empty.RRsets)
	assert.Empty(t, *empty.RRsets)
}

func TestZoneCreateRequest_PowerDNSFields(t *testing.T) {
	body := `{
		"name": "example.org.",
		"kind": "Native",
		"nameservers": ["ns1.example.org."],
		"soa": {"hostmaster": "admin.example.org.", "minimum": 300},
		"zone": "www IN A 192.0.2.1",
		"rrsets": [{"name": "example.org.", "type": "TXT", "ttl": 60, "records": [{"content": "\"v=spf1 -all\""}]}]
	}`
	var req models.ZoneCreateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "www IN A 192.0.2.1", req.ZoneText)
	require.NotNil(t, req.SOA)
	assert.Nil(t, req.SOA.PrimaryNS)
	assert.Equal(t, uint32(300), *req.SOA.Minimum)
	require.Len(t, req.RRsets, 1)
	assert.Equal(t, uint32(60), *req.RRsets[0].TTL)
}

func TestZone_ListFormOmitsRRsets(t *testing.T) {
	data, err := json.Marshal(models.Zone{ID: "example.com.", Name: "example.com.", Masters: []string{}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"rrsets"`)
	assert.Contains(t, string(data), `"masters":[]`)
}

func TestNewStatistic(t *testing.T) {
	item := models.NewStatistic("uptime", "42")
	assert.Equal(t, models.StatisticItem{Name: "uptime", Type: "StatisticItem", Value: "42"}, item)
}
