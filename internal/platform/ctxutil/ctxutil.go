// Copyright (c) 2026 Atimus. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/atimus/edital-api/internal/platform/ctxkey"
	"github.com/atimus/edital-api/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAdmin returns a new context with the verified admin claims attached.
func WithAdmin(ctx context.Context, claims *sec.AdminClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAdmin, claims)
}

// GetAdmin retrieves the [*sec.AdminClaims] from the [context.Context].
// Returns nil for anonymous requests.
func GetAdmin(ctx context.Context) *sec.AdminClaims {
	claims, ok := ctx.Value(ctxkey.KeyAdmin).(*sec.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
