// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/ctxutil"
	"github.com/atimus/edital-api/internal/platform/sec"
	"github.com/atimus/edital-api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
AdminClaims extracts the verified admin bearer claims from the request context.

Returns nil if the request carries no valid admin token.
*/
func AdminClaims(request *http.Request) *sec.AdminClaims {
	return ctxutil.GetAdmin(request.Context())
}

/*
RequiredAdmin ensures the request is authenticated as an admin.

The two failure modes are deliberately distinct: a missing/invalid token is
401, a valid token with the wrong role is 403.

Returns:
  - *sec.AdminClaims: The verified admin claims
  - error: apperr.Unauthorized or apperr.Forbidden
*/
func RequiredAdmin(request *http.Request) (*sec.AdminClaims, error) {

	// Get verified claims injected by the Authenticate middleware
	claims := ctxutil.GetAdmin(request.Context())

	// No valid bearer token at all
	if claims == nil {
		return nil, apperr.Unauthorized("Token inválido ou expirado")
	}

	// Authenticated but not an admin
	if claims.Role != sec.RoleAdmin {
		return nil, apperr.Forbidden("Acesso restrito")
	}

	return claims, nil
}
