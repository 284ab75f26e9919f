// Copyright (c) 2026 Atimus. All rights reserved.

package admin

import (
	"context"
	"log/slog"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/sec"
)

// # Service Layer

// Service authenticates platform operators and issues their bearer tokens.
type Service struct {
	store  Store
	tokens *sec.TokenService
	logger *slog.Logger
}

// NewService creates the admin authentication service.
func NewService(store Store, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

/*
Login authenticates an admin and issues an 8-hour access token.

Description: Unknown email and wrong password collapse into the same
credential error. Token signing fails with a configuration error when the
JWT secret is unset, surfaced only at this point (lenient boot).

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - string: Signed JWT access token
  - error: apperr.Unauthorized, apperr.Configuration, or internal errors
*/
func (service *Service) Login(ctx context.Context, email string, password string) (string, error) {
	account, err := service.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsAppError(err) {
			service.logger.InfoContext(ctx, "admin_login_unknown_email",
				slog.String("email", sec.MaskEmail(email)),
			)
			return "", apperr.Unauthorized("Credenciais inválidas")
		}
		return "", err
	}

	if !sec.CheckPassword(password, account.PasswordHash) {
		service.logger.InfoContext(ctx, "admin_login_bad_password",
			slog.String("admin_id", account.ID),
		)
		return "", apperr.Unauthorized("Credenciais inválidas")
	}

	token, err := service.tokens.Issue(account.Email, account.Role, TokenTTL)
	if err != nil {
		return "", err
	}

	service.logger.InfoContext(ctx, "admin_login",
		slog.String("admin_id", account.ID),
	)
	return token, nil
}
