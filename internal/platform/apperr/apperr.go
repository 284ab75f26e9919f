// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package apperr defines the centralized error handling framework for the
Atimus edital API.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Anti-enumeration: Generic credential/token variants never reveal whether an
    account exists.
  - Mapping: Explicit mapping from AppError to HTTP status codes.

Every error that leaves the service layer should be wrapped as an [AppError] to
ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the edital API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Edital") // Returns "Edital não encontrado"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " não encontrado",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
//
// Used for missing/invalid bearer tokens, absent or expired session cookies,
// and the deliberately generic "Credenciais inválidas" login failure.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] (authenticated but not allowed: wrong
// role, or email not yet verified).
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates an [AppError] for duplicate email/taxid registrations.
//
// The public contract of this API reports duplicates as HTTP 400, not 409 —
// frontend clients branch on the CONFLICT code, never on the status line.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidOrExpired creates a 400 [AppError] for token lookups that failed.
//
// It is intentionally generic: callers must not distinguish "wrong token"
// from "expired token" to the client.
func InvalidOrExpired(msg string) *AppError {
	return &AppError{
		Code:       "INVALID_OR_EXPIRED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Ocorreu um erro inesperado",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Configuration creates a 500 [AppError] for operator-fixable misconfiguration
// (missing JWT secret, missing reset-token pepper).
//
// The precise missing variable is kept server-side in Cause; clients only see
// a generic message.
func Configuration(cause error) *AppError {
	return &AppError{
		Code:       "CONFIGURATION_ERROR",
		Message:    "Serviço indisponível por erro de configuração",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for degraded dependencies.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
