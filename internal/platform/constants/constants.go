// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and shared header names.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "edital-api"
	AppVersion = "1.2.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// ThrottleLimit is how many requests a single IP may make to a
	// credential-sensitive endpoint per ThrottleWindow.
	ThrottleLimit = 20

	// ThrottleWindow is the fixed window of the Redis anti-flood counter.
	ThrottleWindow = 5 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in admin bearer tokens.
	AuthIssuer = "atimus.agr.br"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "msg"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	// RedisPrefixThrottle namespaces the anti-flood fixed-window counters.
	RedisPrefixThrottle = "throttle:"
)
