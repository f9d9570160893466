package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrazone/internal/api/handlers"
	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/resolvers"
	"github.com/jroosing/hydrazone/internal/rrset"
	"github.com/jroosing/hydrazone/internal/zone"
)

type testEnv struct {
	cfg       *config.Config
	db        *database.DB
	flattener *resolvers.Flattener
	router    *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := rrset.New(db, rrset.DefaultConfig(), logger)
	flattener := resolvers.NewFlattener(db, nil, resolvers.Config{Enabled: true, MaxHops: 10, CacheTTL: time.Minute}, logger)
	h := handlers.New(cfg, db, engine, flattener, logger)

	return &testEnv{cfg: cfg, db: db, flattener: flattener, router: setupTestRouter(h)}
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/servers", h.ListServers)

	srv := api.Group("/servers/:server_id", h.RequireServer())
	srv.GET("", h.GetServer)
	srv.GET("/statistics", h.Statistics)
	srv.GET("/config", h.GetConfig)
	srv.GET("/search-data", h.SearchData)
	srv.PUT("/cache/flush", h.FlushCache)
	srv.GET("/zones", h.ListZones)
	srv.POST("/zones", h.CreateZone)
	srv.GET("/zones/:zone_id", h.GetZone)
	srv.PATCH("/zones/:zone_id", h.PatchZone)
	srv.PUT("/zones/:zone_id", h.UpdateZone)
	srv.DELETE("/zones/:zone_id", h.DeleteZone)
	srv.GET("/zones/:zone_id/export", h.ExportZone)

	return r
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedRaw writes a zone and records straight to the store, bypassing the
// engine's exclusivity rules. Used for apex CNAME fixtures.
func (e *testEnv) seedRaw(t *testing.T, name string, records ...zone.Record) {
	t.Helper()
	ctx := context.Background()
	tx, err := e.db.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	z := &zone.Zone{Name: name, Kind: zone.KindNative, Serial: 2024010101}
	_, err = tx.CreateZone(ctx, z)
	require.NoError(t, err)
	for _, r := range records {
		_, err := tx.InsertRecord(ctx, z.ID, r)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())
}

func rec(name, typ, content string) zone.Record {
	return zone.Record{Name: name, Type: dns.MustParseType(typ), Content: content, TTL: 300}
}

const zonesPath = "/api/v1/servers/localhost/zones"
