// Package handlers implements the REST API endpoint handlers for HydraZone.
//
// REST API Endpoints (PowerDNS-compatible, under /api/v1):
//
// System Health:
//   - GET /health - Health check status
//
// Servers:
//   - GET /servers - List servers (always one)
//   - GET /servers/:server_id - Server object
//   - GET /servers/:server_id/statistics - Zone, record, cache and process statistics
//   - GET /servers/:server_id/config - Configuration settings
//   - GET /servers/:server_id/search-data - Search zones and records
//   - PUT /servers/:server_id/cache/flush - Flush the CNAME flattening cache
//
// Zones:
//   - GET /servers/:server_id/zones - List zones
//   - POST /servers/:server_id/zones - Create a zone
//   - GET /servers/:server_id/zones/:zone_id - Zone with RRsets
//   - PATCH /servers/:server_id/zones/:zone_id - Apply RRset changes
//   - PUT /servers/:server_id/zones/:zone_id - Update zone metadata
//   - DELETE /servers/:server_id/zones/:zone_id - Delete a zone
//   - GET /servers/:server_id/zones/:zone_id/export - BIND zone file
//
// Authentication:
//
// When an API key is configured every endpoint except /health requires
// either the X-API-Key header or an Authorization: Bearer token.
//
// @title HydraZone API
// @version 1.0
// @description PowerDNS-compatible REST API for authoritative zones with apex CNAME flattening.
//
// @contact.name HydraZone
// @contact.url https://github.com/jroosing/hydrazone
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8081
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/resolvers"
	"github.com/jroosing/hydrazone/internal/rrset"
)

// Version is reported by the server object and the config endpoint.
var Version = "1.0.0"

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	engine    *rrset.Engine
	flattener *resolvers.Flattener
	logger    *slog.Logger
	startTime time.Time
}

// New creates a new Handler. flattener may be nil when flattening is not
// wired.
func New(cfg *config.Config, db *database.DB, engine *rrset.Engine, flattener *resolvers.Flattener, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		engine:    engine,
		flattener: flattener,
		logger:    logger,
		startTime: time.Now(),
	}
}

// invalidate drops cached flattening results for names after a mutation.
// Failures only cost freshness, so they are logged.
func (h *Handler) invalidate(ctx context.Context, names ...string) {
	if h.flattener == nil {
		return
	}
	for _, name := range names {
		if _, err := h.flattener.Flush(ctx, name); err != nil {
			h.logger.Warn("failed to flush flattening cache", "name", name, "err", err)
		}
	}
}
