// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package ratelimit implements a Redis-backed fixed-window throttle for the
credential-sensitive endpoints (client login, password reset request).

The in-memory token bucket in the middleware package guards the whole API;
this package adds a second, shared-across-replicas window on the endpoints
where request flooding has a security cost (credential stuffing, reset-email
bombing).

Failure policy: if Redis is unreachable the throttle FAILS OPEN. A degraded
counter store must never lock every user out of login; the incident is logged
once per request and the global in-memory limiter still applies.
*/
package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/constants"
	"github.com/atimus/edital-api/internal/platform/ctxutil"
	"github.com/atimus/edital-api/internal/platform/respond"
)

// FixedWindow counts requests per key inside a rolling expiry window.
type FixedWindow struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewFixedWindow constructs a throttle allowing `limit` requests per `window`.
func NewFixedWindow(client *redis.Client, limit int64, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, limit: limit, window: window}
}

// Allow increments the counter for key and reports whether the request is
// within the window's budget.
//
// The INCR+EXPIRE pair runs in a pipeline so two racing requests cannot leave
// an immortal counter behind.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := constants.RedisPrefixThrottle + key

	pipe := fw.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, fw.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= fw.limit, nil
}

// Middleware wraps a route with the throttle, keyed by client IP and path.
//
// # Usage
//
//	router.With(throttle.Middleware("cliente_login")).Post("/login", h.login)
func (fw *FixedWindow) Middleware(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := name + ":" + realIP(request)

			allowed, err := fw.Allow(request.Context(), key)
			if err != nil {
				// Fail open: a broken Redis must not take login down with it.
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"throttle_degraded",
					slog.String("throttle", name),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				respond.Error(writer, request, apperr.RateLimited("Muitas tentativas. Tente novamente em instantes."))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// realIP mirrors middleware.RealIP without importing it (avoids a cycle with
// the respond/ctxutil chain used here).
//
// Behind chained proxies X-Forwarded-For is a comma-separated list; only the
// first element is the client, and keying on the whole list would let the
// same client occupy one window per hop chain.
func realIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}
