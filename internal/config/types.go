package config

import "time"

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// ID is the PowerDNS server_id accepted in API paths.
	ID              string        `yaml:"id" json:"id" validate:"required"`
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port" validate:"min=1,max=65535"`
	ReusePort       bool          `yaml:"reuse_port" json:"reuse_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	Swagger bool   `yaml:"swagger" json:"swagger"`
	UI      bool   `yaml:"ui" json:"ui"`
}

// DatabaseConfig locates the SQLite record store.
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path" validate:"required"`
}

// SOAConfig holds the SOA fields seeded into new zones.
type SOAConfig struct {
	PrimaryNS  string `yaml:"primary_ns" json:"primary_ns" validate:"required"`
	Hostmaster string `yaml:"hostmaster" json:"hostmaster" validate:"required"`
	Refresh    uint32 `yaml:"refresh" json:"refresh" validate:"gt=0"`
	Retry      uint32 `yaml:"retry" json:"retry" validate:"gt=0"`
	Expire     uint32 `yaml:"expire" json:"expire" validate:"gt=0"`
	Minimum    uint32 `yaml:"minimum" json:"minimum" validate:"gt=0"`
}

// DNSConfig holds record defaults.
type DNSConfig struct {
	DefaultTTL  uint32    `yaml:"default_ttl" json:"default_ttl" validate:"gt=0"`
	Nameservers []string  `yaml:"nameservers" json:"nameservers"`
	SOA         SOAConfig `yaml:"soa" json:"soa"`
}

// RedisConfig locates the Redis durable flattening tier.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"-"`
	DB       int    `yaml:"db" json:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// FlatteningConfig controls apex CNAME flattening.
type FlatteningConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	MaxHops  int           `yaml:"max_hops" json:"max_hops" validate:"min=1,max=64"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl" validate:"gt=0"`
	// Durable selects the durable cache tier: "sqlite", "redis" or "none".
	Durable       string        `yaml:"durable" json:"durable" validate:"oneof=none sqlite redis"`
	PurgeInterval time.Duration `yaml:"purge_interval" json:"purge_interval" validate:"gte=0"`
	Redis         RedisConfig   `yaml:"redis" json:"redis"`
}

// PaginationConfig bounds list and search results.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" json:"default_limit" validate:"min=1"`
	MaxLimit     int `yaml:"max_limit" json:"max_limit" validate:"min=1,gtefield=DefaultLimit"`
}

// RateLimitConfig controls per-client API rate limiting.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// RequestsPerMinute is the sustained rate per client IP.
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute" validate:"gte=0"`
	// Burst defaults to RequestsPerMinute.
	Burst int `yaml:"burst" json:"burst" validate:"gte=0"`
	// CleanupInterval is how often idle client limiters are dropped.
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" validate:"gte=0"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level" json:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	Structured       bool              `yaml:"structured" json:"structured"`
	StructuredFormat string            `yaml:"structured_format" json:"structured_format" validate:"oneof=json text"`
	IncludePID       bool              `yaml:"include_pid" json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields" json:"extra_fields,omitempty"`

	// File enables rotated file output in addition to stderr.
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server"`
	API        APIConfig        `yaml:"api" json:"api"`
	Database   DatabaseConfig   `yaml:"database" json:"database"`
	DNS        DNSConfig        `yaml:"dns" json:"dns"`
	Flattening FlatteningConfig `yaml:"flattening" json:"flattening"`
	Pagination PaginationConfig `yaml:"pagination" json:"pagination"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" json:"rate_limit"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}
