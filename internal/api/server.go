// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atimus/edital-api/internal/admin"
	"github.com/atimus/edital-api/internal/clients"
	"github.com/atimus/edital-api/internal/editais"
	"github.com/atimus/edital-api/internal/platform/config"
	"github.com/atimus/edital-api/internal/platform/constants"
	"github.com/atimus/edital-api/internal/platform/middleware"
	"github.com/atimus/edital-api/internal/platform/respond"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Clients handles the public client lifecycle routes (/cliente).
	Clients *clients.Handler

	// Admin handles operator authentication (/admin).
	Admin *admin.Handler

	// Editais handles the tender-notice catalog and the keyword assistant.
	Editais *editais.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Routes are mounted at the root (no /api/v1 prefix): the frontend pages
// were published against these exact paths and they are part of the
// compatibility contract.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration. /ping is
	// the legacy probe the deployed frontend still calls on page load.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Get("/ping", pong)

	// # Application API
	r.Mount("/cliente", h.Clients.Routes())

	// Catalog mutations live under /admin/editais next to the operator login;
	// the admin frontend publishes against those paths.
	adminRouter := h.Admin.Routes()
	adminRouter.Mount("/editais", h.Editais.AdminRoutes())
	r.Mount("/admin", adminRouter)

	// Catalog reads are public.
	r.Mount("/editais", h.Editais.Routes())
	r.Post("/chat", h.Editais.Chat)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// pong handles GET /ping.
func pong(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok", "service": constants.AppName})
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
