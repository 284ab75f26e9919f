// Copyright (c) 2026 Atimus. All rights reserved.

// Command api is the entry point for the Atimus edital HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
//
// The cryptographic secrets (JWT_SECRET, RESET_TOKEN_PEPPER) are NOT checked
// at startup: a process missing them still boots and serves everything that
// does not need them, and the affected operations fail individually with a
// configuration error.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atimus/edital-api/internal/admin"
	"github.com/atimus/edital-api/internal/api"
	"github.com/atimus/edital-api/internal/clients"
	"github.com/atimus/edital-api/internal/editais"
	"github.com/atimus/edital-api/internal/mailer"
	"github.com/atimus/edital-api/internal/platform/config"
	"github.com/atimus/edital-api/internal/platform/constants"
	"github.com/atimus/edital-api/internal/platform/migration"
	pgstore "github.com/atimus/edital-api/internal/platform/postgres"
	"github.com/atimus/edital-api/internal/platform/ratelimit"
	redisstore "github.com/atimus/edital-api/internal/platform/redis"
	"github.com/atimus/edital-api/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Atimus] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	if cfg.JWTSecret == "" {
		log.Warn("jwt_secret_not_configured", slog.String("impact", "admin login will fail"))
	}
	if cfg.ResetPepper == "" {
		log.Warn("reset_pepper_not_configured", slog.String("impact", "password reset will fail"))
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Primitives ────────────────────────────────────────────
	jwtSvc := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	minter := sec.NewMinter(cfg.ResetPepper)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	links := mailer.NewLinks(cfg.BaseAPIURL, cfg.FrontendLoginURL)
	mail := mailer.NewLogMailer(log)
	throttle := ratelimit.NewFixedWindow(rdb, constants.ThrottleLimit, constants.ThrottleWindow)

	clientStore := clients.NewPostgresStore(pool)
	clientService := clients.NewService(clientStore, mail, links, minter, log)
	clientHandler := clients.NewHandler(clientService, throttle, cfg.FrontendLoginURL)

	adminStore := admin.NewPostgresStore(pool)
	adminService := admin.NewService(adminStore, jwtSvc, log)
	adminHandler := admin.NewHandler(adminService)

	editalStore := editais.NewPostgresStore(pool)
	editalService := editais.NewService(editalStore, cfg.FrontendURL, log)
	editalHandler := editais.NewHandler(editalService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Clients:   clientHandler,
		Admin:     adminHandler,
		Editais:   editalHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
