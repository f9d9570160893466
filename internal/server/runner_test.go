package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/resolvers"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Database.Path = filepath.Join(t.TempDir(), "runner.db")
	cfg.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func TestRunner_ServesUntilCanceled(t *testing.T) {
	cfg := testConfig(t)
	ln, err := Listen(context.Background(), "127.0.0.1:0", false)
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- NewRunner(quietLogger()).RunOnListener(ctx, cfg, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/v1/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/servers/localhost/zones", "application/json",
		strings.NewReader(`{"name":"example.com."}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
	}

	db, err := database.Open(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.GetZone(context.Background(), "example.com.")
	assert.NoError(t, err, "the zone was committed to the configured store")
}

func TestRunner_BadDatabasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "dir", "x.db")
	ln, err := Listen(context.Background(), "127.0.0.1:0", false)
	require.NoError(t, err)

	err = NewRunner(quietLogger()).RunOnListener(context.Background(), cfg, ln)
	require.Error(t, err)
}

func TestListen_ReusePort(t *testing.T) {
	ctx := context.Background()
	first, err := Listen(ctx, "127.0.0.1:0", true)
	require.NoError(t, err)
	defer first.Close()

	second, err := Listen(ctx, first.Addr().String(), true)
	require.NoError(t, err, "SO_REUSEPORT lets a second listener share the address")
	second.Close()

	_, err = Listen(ctx, first.Addr().String(), false)
	assert.Error(t, err)
}

func TestDurableTier(t *testing.T) {
	cfg := testConfig(t)
	db, err := database.Open(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	r := NewRunner(quietLogger())

	cfg.Flattening.Durable = "sqlite"
	tier, release, err := r.durableTier(cfg, db)
	require.NoError(t, err)
	defer release()
	assert.IsType(t, &database.FlattenCache{}, tier)

	cfg.Flattening.Durable = "none"
	tier, release, err = r.durableTier(cfg, db)
	require.NoError(t, err)
	defer release()
	assert.Nil(t, tier)
}

func TestEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DNS.DefaultTTL = 600
	cfg.DNS.SOA.Hostmaster = "admin.example.org."

	ec := EngineConfig(cfg)
	assert.Equal(t, uint32(600), ec.DefaultTTL)
	assert.Equal(t, "admin.example.org.", ec.SOA.Hostmaster)
	assert.Equal(t, cfg.DNS.Nameservers, ec.Nameservers)
}

func TestNewFlattener_FollowsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Flattening.Enabled = false
	f := NewFlattener(cfg, nil, nil, quietLogger())
	assert.False(t, f.Enabled())
}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

var _ resolvers.ExpiredPurger = (*countingPurger)(nil)

func TestJanitor_PurgesOnInterval(t *testing.T) {
	p := &countingPurger{}
	j := &Janitor{Logger: quietLogger(), Purger: p, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestJanitor_ErrorsAndDisabled(t *testing.T) {
	p := &countingPurger{err: errors.New("locked")}
	j := &Janitor{Logger: quietLogger(), Purger: p, Interval: 5 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	j.Run(ctx)
	assert.Positive(t, p.calls.Load(), "failures do not stop the janitor")

	idle := &countingPurger{}
	(&Janitor{Purger: idle}).Run(context.Background())
	assert.Zero(t, idle.calls.Load(), "a zero interval returns immediately")
}
