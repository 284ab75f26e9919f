// Copyright (c) 2026 Atimus. All rights reserved.

package admin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atimus/edital-api/internal/platform/middleware"
	requestutil "github.com/atimus/edital-api/internal/platform/request"
	"github.com/atimus/edital-api/internal/platform/respond"
	"github.com/atimus/edital-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the admin HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the admin routes.
//
// # Endpoints
//   - POST /login     : Authenticates and returns a bearer token.
//   - GET  /protected : Token smoke-test endpoint for the admin frontend.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/protected", handler.protected)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

/*
Login authenticates a platform operator.

POST /admin/login

Description: Verifies credentials and returns a JWT bearer token with an
8-hour lifetime. No cookie is involved; the admin frontend stores the token
and sends it in the Authorization header.

Request:
  - Body: loginRequest (Email, Senha)

Response:
  - 200: access_token and token_type
  - 401: Invalid credentials
  - 500: JWT secret not configured
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldSenha, input.Senha)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Login(request.Context(),
		strings.ToLower(strings.TrimSpace(input.Email)), input.Senha)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}

/*
Protected confirms that the presented bearer token is valid and admin-scoped.

GET /admin/protected

Response:
  - 200: Welcome message with the token subject
  - 401: Missing or invalid token
  - 403: Valid token without the admin role
*/
func (handler *Handler) protected(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.AdminClaims(request)

	respond.OK(writer, map[string]any{
		"msg": "Bem-vindo, " + claims.Subject,
	})
}
