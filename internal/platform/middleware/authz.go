// Copyright (c) 2026 Atimus. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/ctxutil"
	"github.com/atimus/edital-api/internal/platform/respond"
	"github.com/atimus/edital-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AdminClaims, error)
}

// Authenticate extracts and verifies the admin JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AdminClaims] into the request context for downstream use.
//
// Verification failures are collapsed into a single 401 — the response never
// reveals whether the signature, algorithm, or expiry was at fault.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Token inválido ou expirado"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAdmin(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests that do not carry a valid admin bearer token.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Missing/invalid token → 401.
//  2. Valid token, non-admin role → 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAdmin(request.Context())

		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Token inválido ou expirado"))
			return
		}

		if claims.Role != sec.RoleAdmin {
			respond.Error(writer, request, apperr.Forbidden("Acesso restrito"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
