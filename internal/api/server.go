// Package api provides the PowerDNS-compatible REST API for HydraZone.
// It wires the handlers, authentication, rate limiting, request logging,
// swagger and the landing page onto a Gin engine.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrazone/internal/api/handlers"
	"github.com/jroosing/hydrazone/internal/api/middleware"
	"github.com/jroosing/hydrazone/internal/config"
	"github.com/jroosing/hydrazone/internal/database"
	"github.com/jroosing/hydrazone/internal/resolvers"
	"github.com/jroosing/hydrazone/internal/rrset"
)

// Deps are the domain services behind the API.
type Deps struct {
	DB        *database.DB
	Engine    *rrset.Engine
	Flattener *resolvers.Flattener
}

// Server is the REST API server.
//
// Security note: do not expose the API to untrusted networks without an
// api_key.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))

	h := handlers.New(cfg, deps.DB, deps.Engine, deps.Flattener, logger)
	RegisterRoutes(engine, h, cfg)
	if cfg.API.UI {
		MountUI(engine, logger)
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, httpServer: httpServer}
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln, which lets callers supply a listener
// with custom socket options.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
