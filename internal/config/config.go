// Package config provides configuration loading and validation for HydraZone.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables (optionally seeded from a .env file). The
// result is normalized and validated before use.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HYDRAZONE_"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ID:              "localhost",
			Host:            "0.0.0.0",
			Port:            8081,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{Swagger: true, UI: true},
		Database: DatabaseConfig{
			Path: "hydrazone.db",
		},
		DNS: DNSConfig{
			DefaultTTL:  3600,
			Nameservers: []string{"ns1.example.com.", "ns2.example.com."},
			SOA: SOAConfig{
				PrimaryNS:  "ns1.example.com.",
				Hostmaster: "hostmaster.example.com.",
				Refresh:    3600,
				Retry:      1800,
				Expire:     604800,
				Minimum:    86400,
			},
		},
		Flattening: FlatteningConfig{
			Enabled:       true,
			MaxHops:       10,
			CacheTTL:      300 * time.Second,
			Durable:       "sqlite",
			PurgeInterval: 5 * time.Minute,
			Redis:         RedisConfig{Addr: "127.0.0.1:6379", Prefix: "hydrazone:flatten:"},
		},
		Pagination: PaginationConfig{DefaultLimit: 50, MaxLimit: 1000},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
			CleanupInterval:   10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			MaxSizeMB:        100,
			MaxBackups:       5,
			MaxAgeDays:       28,
		},
	}
}

// ResolveConfigPath returns the config file path from the flag value,
// falling back to HYDRAZONE_CONFIG. Empty means no file.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG"))
}

// Load builds the configuration from defaults, the YAML file at path (if
// any), the .env file and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads HYDRAZONE_ENV_FILE, or ./.env, into the process
// environment. Variables already set win. A missing file is not an error.
func loadDotEnv() error {
	file := os.Getenv(EnvPrefix + "ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}

type envBinding struct {
	key string
	set func(cfg *Config, v string) error
}

func setString(dst func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		*dst(cfg) = v
		return nil
	}
}

func setInt(dst func(*Config) *int) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(cfg) = n
		return nil
	}
}

func setBool(dst func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(cfg) = b
		return nil
	}
}

func setDuration(dst func(*Config) *time.Duration) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst(cfg) = d
		return nil
	}
}

var envBindings = []envBinding{
	{"SERVER_ID", setString(func(c *Config) *string { return &c.Server.ID })},
	{"HOST", setString(func(c *Config) *string { return &c.Server.Host })},
	{"PORT", setInt(func(c *Config) *int { return &c.Server.Port })},
	{"REUSE_PORT", setBool(func(c *Config) *bool { return &c.Server.ReusePort })},
	{"API_KEY", setString(func(c *Config) *string { return &c.API.APIKey })},
	{"DATABASE_PATH", setString(func(c *Config) *string { return &c.Database.Path })},
	{"DEFAULT_TTL", func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		c.DNS.DefaultTTL = uint32(n)
		return nil
	}},
	{"NAMESERVERS", func(c *Config, v string) error {
		c.DNS.Nameservers = splitList(v)
		return nil
	}},
	{"FLATTENING_ENABLED", setBool(func(c *Config) *bool { return &c.Flattening.Enabled })},
	{"FLATTENING_MAX_HOPS", setInt(func(c *Config) *int { return &c.Flattening.MaxHops })},
	{"FLATTENING_CACHE_TTL", setDuration(func(c *Config) *time.Duration { return &c.Flattening.CacheTTL })},
	{"FLATTENING_DURABLE", setString(func(c *Config) *string { return &c.Flattening.Durable })},
	{"REDIS_ADDR", setString(func(c *Config) *string { return &c.Flattening.Redis.Addr })},
	{"REDIS_PASSWORD", setString(func(c *Config) *string { return &c.Flattening.Redis.Password })},
	{"REDIS_DB", setInt(func(c *Config) *int { return &c.Flattening.Redis.DB })},
	{"RATE_LIMIT_ENABLED", setBool(func(c *Config) *bool { return &c.RateLimit.Enabled })},
	{"RATE_LIMIT_RPM", setInt(func(c *Config) *int { return &c.RateLimit.RequestsPerMinute })},
	{"LOG_LEVEL", setString(func(c *Config) *string { return &c.Logging.Level })},
	{"LOG_FORMAT", setString(func(c *Config) *string { return &c.Logging.StructuredFormat })},
	{"LOG_STRUCTURED", setBool(func(c *Config) *bool { return &c.Logging.Structured })},
	{"LOG_FILE", setString(func(c *Config) *string { return &c.Logging.File })},
}

// applyEnv applies HYDRAZONE_* overrides found through lookup.
func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.key)
		if !ok {
			continue
		}
		if err := b.set(cfg, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, b.key, err)
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var validate = validator.New()

// Validate normalizes the configuration and checks it.
func (cfg *Config) Validate() error {
	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	cfg.Logging.StructuredFormat = strings.ToLower(cfg.Logging.StructuredFormat)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize server
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.ID == "" {
		cfg.Server.ID = "localhost"
	}

	// Normalize flattening
	cfg.Flattening.Durable = strings.ToLower(strings.TrimSpace(cfg.Flattening.Durable))
	if cfg.Flattening.Durable == "" {
		cfg.Flattening.Durable = "none"
	}

	// Normalize rate limiting
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = cfg.RateLimit.RequestsPerMinute
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Flattening.Durable == "redis" && cfg.Flattening.Redis.Addr == "" {
		return errors.New("invalid configuration: flattening.redis.addr is required when flattening.durable is redis")
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute == 0 {
		return errors.New("invalid configuration: rate_limit.requests_per_minute must be positive when rate limiting is enabled")
	}
	return nil
}

// Listen returns the host:port the API server binds.
func (cfg *Config) Listen() string {
	return net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
}
