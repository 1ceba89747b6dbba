// Package server exposes the monetization platform over HTTP and WebSocket.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/databond/internal/server/handler"
	"github.com/alanyoungcy/databond/internal/server/middleware"
	"github.com/alanyoungcy/databond/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Health    *handler.HealthHandler
	Assets    *handler.AssetHandler
	Bonds     *handler.BondHandler
	Portfolio *handler.PortfolioHandler
}

// Server is the headless HTTP + WebSocket API server for the platform.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// It wires up middleware (logging, CORS) and attaches the WebSocket hub.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// --- Register routes ---

	// Health check.
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// Asset endpoints.
	mux.HandleFunc("POST /api/assets", handlers.Assets.RegisterAsset)
	mux.HandleFunc("GET /api/assets", handlers.Assets.ListHighValueAssets)
	mux.HandleFunc("GET /api/assets/{id}/value", handlers.Assets.GetAssetValue)

	// Bond endpoints.
	mux.HandleFunc("POST /api/bonds", handlers.Bonds.CreateBond)
	mux.HandleFunc("GET /api/bonds", handlers.Bonds.ListBonds)
	mux.HandleFunc("GET /api/bonds/{id}", handlers.Bonds.GetBond)
	mux.HandleFunc("POST /api/bonds/{id}/redeem", handlers.Bonds.RedeemBond)

	// Portfolio endpoints.
	mux.HandleFunc("GET /api/portfolio", handlers.Portfolio.GetSummary)
	mux.HandleFunc("GET /api/portfolio/metrics", handlers.Portfolio.GetMetrics)
	mux.HandleFunc("GET /api/portfolio/top", handlers.Portfolio.GetTopBonds)
	mux.HandleFunc("GET /api/portfolio/schedule", handlers.Portfolio.GetSchedule)
	mux.HandleFunc("GET /api/portfolio/report", handlers.Portfolio.GetReport)

	// WebSocket endpoint.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain.
	var h http.Handler = mux
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
