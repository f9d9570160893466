package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/zone"
)

func seed(t *testing.T, path string) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(path)
	require.NoError(t, err)
	defer db.Close()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	for _, zr := range []struct {
		name string
		rec  zone.Record
	}{
		{"example.com.", zone.Record{Name: "example.com.", Type: dns.TypeCNAME, Content: "lb.target.net.", TTL: 300}},
		{"target.net.", zone.Record{Name: "lb.target.net.", Type: dns.TypeA, Content: "192.0.2.7", TTL: 60}},
	} {
		z := &zone.Zone{Name: zr.name, Kind: zone.KindNative, Serial: 2024010101}
		_, err := tx.CreateZone(ctx, z)
		require.NoError(t, err)
		_, err = tx.InsertRecord(ctx, z.ID, zr.rec)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "zones.db")
	seed(t, cfg.Database.Path)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, "example.com", false, &out))
	assert.Contains(t, out.String(), "; zone example.com. kind Native serial 2024010101")
	assert.Contains(t, out.String(), "example.com.\t300\tIN\tCNAME\tlb.target.net.")

	out.Reset()
	require.NoError(t, run(context.Background(), cfg, "example.com.", true, &out))
	assert.Contains(t, out.String(), "example.com.\t60\tIN\tA\t192.0.2.7")
	assert.NotContains(t, out.String(), "CNAME")

	err := run(context.Background(), cfg, "missing.org.", false, &out)
	require.ErrorIs(t, err, zone.ErrNotFound)
}
