package server

import (
	"log/slog"

	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/resolvers"
	"github.com/jroosing/hydrazone/internal/rrset"
	"github.com/jroosing/hydrazone/internal/zone"
)

// EngineConfig maps the dns section of cfg onto engine defaults.
func EngineConfig(cfg *config.Config) rrset.Config {
	soa := cfg.DNS.SOA
	return rrset.Config{
		DefaultTTL: cfg.DNS.DefaultTTL,
		SOA: rrset.SOADefaults{
			PrimaryNS:  soa.PrimaryNS,
			Hostmaster: soa.Hostmaster,
			Refresh:    soa.Refresh,
			Retry:      soa.Retry,
			Expire:     soa.Expire,
			Minimum:    soa.Minimum,
		},
		Nameservers: cfg.DNS.Nameservers,
	}
}

// NewFlattener builds the flattener described by cfg. durable may be nil.
func NewFlattener(cfg *config.Config, lookup zone.RecordLookup, durable resolvers.CacheStore, logger *slog.Logger) *resolvers.Flattener {
	fc := cfg.Flattening
	var opts []resolvers.FlattenerOption
	if durable != nil {
		opts = append(opts, resolvers.WithDurableCache(durable))
	}
	return resolvers.NewFlattener(lookup, nil, resolvers.Config{
		Enabled:  fc.Enabled,
		MaxHops:  fc.MaxHops,
		CacheTTL: fc.CacheTTL,
	}, logger, opts...)
}
