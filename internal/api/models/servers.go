package models

// Server is the PowerDNS server object.
type Server struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	DaemonType string `json:"daemon_type"`
	Version    string `json:"version"`
	URL        string `json:"url"`
	ConfigURL  string `json:"config_url"`
	ZonesURL   string `json:"zones_url"`
}

// ConfigSetting is one entry of GET /servers/{server_id}/config.
type ConfigSetting struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SearchResult is one entry of GET /servers/{server_id}/search-data.
type SearchResult struct {
	ObjectType string `json:"object_type"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Content    string `json:"content,omitempty"`
	ZoneID     string `json:"zone_id"`
	Zone       string `json:"zone"`
}

// CacheFlushResult is the response of PUT /servers/{server_id}/cache/flush.
type CacheFlushResult struct {
	Count  int    `json:"count"`
	Result string `json:"result"`
}
