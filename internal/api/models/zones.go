package models

// Record is one record inside an RRset.
type Record struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled"`
	Priority *int   `json:"priority,omitempty"`
	// Flattened marks address records synthesized from an apex CNAME.
	Flattened bool `json:"flattened,omitempty"`
}

// RRSet is a set of records sharing a name and type. Changetype is only
// set in PATCH requests.
type RRSet struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	TTL        *uint32  `json:"ttl,omitempty"`
	Changetype string   `json:"changetype,omitempty"`
	Records    []Record `json:"records"`
	Comments   []any    `json:"comments"`
}

// Zone is the PowerDNS zone object. RRsets are only included on single-zone
// reads.
type Zone struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	URL            string   `json:"url"`
	Kind           string   `json:"kind"`
	Serial         uint32   `json:"serial"`
	NotifiedSerial uint32   `json:"notified_serial"`
	Masters        []string `json:"masters"`
	DNSSEC         bool     `json:"dnssec"`
	Account        string   `json:"account"`
	RRsets         []RRSet  `json:"rrsets,omitempty"`
}

// SOAOverride replaces individual SOA defaults when creating a zone.
type SOAOverride struct {
	PrimaryNS  *string `json:"primary_ns,omitempty"`
	Hostmaster *string `json:"hostmaster,omitempty"`
	Refresh    *uint32 `json:"refresh,omitempty"`
	Retry      *uint32 `json:"retry,omitempty"`
	Expire     *uint32 `json:"expire,omitempty"`
	Minimum    *uint32 `json:"minimum,omitempty"`
}

// ZoneCreateRequest is the body of POST /zones.
type ZoneCreateRequest struct {
	Name        string       `json:"name" binding:"required"`
	Kind        string       `json:"kind"`
	Account     string       `json:"account"`
	Masters     []string     `json:"masters"`
	Nameservers []string     `json:"nameservers"`
	TTL         *uint32      `json:"ttl,omitempty"`
	SOA         *SOAOverride `json:"soa,omitempty"`
	RRsets      []RRSet      `json:"rrsets"`
	// ZoneText is BIND zone-file content to import.
	ZoneText string `json:"zone,omitempty"`
}

// ZonePatchRequest is the body of PATCH /zones/{zone_id}. A missing rrsets
// field is rejected.
type ZonePatchRequest struct {
	RRsets *[]RRSet `json:"rrsets"`
}

// ZoneUpdateRequest is the body of PUT /zones/{zone_id}.
type ZoneUpdateRequest struct {
	Kind    *string  `json:"kind,omitempty"`
	Account *string  `json:"account,omitempty"`
	Masters []string `json:"masters,omitempty"`
}
