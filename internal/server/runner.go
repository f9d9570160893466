// Package server wires the record store, the RRset engine, the flattening
// resolver and the REST API together and runs them until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/hydrazone/internal/api"
	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/resolvers"
	"github.com/jroosing/hydrazone/internal/rrset"
)

const defaultShutdownTimeout = 10 * time.Second

// Runner orchestrates startup, serving and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run serves until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext binds the configured address and serves until ctx is
// canceled or the server fails.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ln, err := Listen(ctx, cfg.Listen(), cfg.Server.ReusePort)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Listen(), err)
	}
	return r.RunOnListener(ctx, cfg, ln)
}

// RunOnListener serves on ln, which it closes on return.
//
// Server lifecycle:
//  1. Open the record store and apply migrations
//  2. Build the durable flattening tier (SQLite, Redis or none)
//  3. Build the RRset engine, the flattener and the API
//  4. Serve and run the flattening cache janitor
//  5. On cancellation, drain in-flight requests within the shutdown timeout
func (r *Runner) RunOnListener(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer db.Close()

	durable, closeDurable, err := r.durableTier(cfg, db)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer closeDurable()

	flattener := NewFlattener(cfg, db, durable, r.logger)
	engine := rrset.New(db, EngineConfig(cfg), r.logger)
	srv := api.New(cfg, api.Deps{DB: db, Engine: engine, Flattener: flattener}, r.logger)

	r.logStartup(cfg, ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	janitor := &Janitor{Logger: r.logger, Purger: flattener, Interval: cfg.Flattening.PurgeInterval}
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		janitor.Run(ctx)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}
	cancelRun()
	<-janitorDone

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("api shutdown incomplete", "err", err)
	}
	r.logger.Info("server stopped")
	return serveErr
}

// durableTier returns the configured durable flattening tier and a func
// releasing it. The tier is nil when flattening.durable is "none".
func (r *Runner) durableTier(cfg *config.Config, db *database.DB) (resolvers.CacheStore, func(), error) {
	switch cfg.Flattening.Durable {
	case "sqlite":
		return db.FlattenCache(), func() {}, nil
	case "redis":
		rc := cfg.Flattening.Redis
		client, err := resolvers.DialRedis(rc.Addr, rc.Password, rc.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", rc.Addr, err)
		}
		return resolvers.NewRedisCache(client, rc.Prefix), client.Close, nil
	}
	return nil, func() {}, nil
}

// logStartup logs server configuration at startup.
func (r *Runner) logStartup(cfg *config.Config, addr net.Addr) {
	r.logger.Info(
		"api listening",
		"addr", addr.String(),
		"server_id", cfg.Server.ID,
		"reuse_port", cfg.Server.ReusePort,
		"auth", cfg.API.APIKey != "",
		"flattening", cfg.Flattening.Enabled,
		"durable_cache", cfg.Flattening.Durable,
		"rate_limit", cfg.RateLimit.Enabled,
	)
}
