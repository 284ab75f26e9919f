// Copyright (c) 2026 Atimus. All rights reserved.

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/admin"
	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/sec"
)

// fakeStore serves a single provisioned admin from memory.
type fakeStore struct {
	account *admin.Account
}

func (store *fakeStore) FindByEmail(_ context.Context, email string) (*admin.Account, error) {
	if store.account != nil && store.account.Email == email {
		copied := *store.account
		return &copied, nil
	}
	return nil, apperr.NotFound("Administrador")
}

func (store *fakeStore) Upsert(_ context.Context, account *admin.Account) error {
	copied := *account
	store.account = &copied
	return nil
}

func newTestService(t *testing.T, secret string) (*admin.Service, *sec.TokenService) {
	t.Helper()

	hash, err := sec.HashPassword("senha-admin")
	require.NoError(t, err)

	store := &fakeStore{account: &admin.Account{
		ID:           "0198c5e0-0000-7000-8000-000000000001",
		Email:        "ops@atimus.agr.br",
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}}

	tokens := sec.NewTokenService(secret, "atimus.agr.br")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return admin.NewService(store, tokens, logger), tokens
}

/*
TestLogin_IssuesAdminToken checks the happy path: the returned JWT verifies
and carries the admin role and the email as subject.
*/
func TestLogin_IssuesAdminToken(t *testing.T) {
	service, tokens := newTestService(t, "test-secret")

	token, err := service.Login(context.Background(), "ops@atimus.agr.br", "senha-admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@atimus.agr.br", claims.Subject)
	assert.Equal(t, sec.RoleAdmin, claims.Role)

	// 8 hour lifetime.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, admin.TokenTTL.Seconds(), remaining.Seconds(), 60)
}

/*
TestLogin_RoleFlowsFromRecord checks that the token claims carry the role
stored on the account, not a fixed value.
*/
func TestLogin_RoleFlowsFromRecord(t *testing.T) {
	hash, err := sec.HashPassword("senha-admin")
	require.NoError(t, err)

	store := &fakeStore{account: &admin.Account{
		ID:           "0198c5e0-0000-7000-8000-000000000002",
		Email:        "auditoria@atimus.agr.br",
		PasswordHash: hash,
		Role:         "auditoria",
		CreatedAt:    time.Now().UTC(),
	}}
	tokens := sec.NewTokenService("test-secret", "atimus.agr.br")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := admin.NewService(store, tokens, logger)

	token, err := service.Login(context.Background(), "auditoria@atimus.agr.br", "senha-admin")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "auditoria", claims.Role)
}

/*
TestLogin_GenericCredentialError checks that unknown email and wrong password
are indistinguishable on the wire.
*/
func TestLogin_GenericCredentialError(t *testing.T) {
	service, _ := newTestService(t, "test-secret")

	_, unknownErr := service.Login(context.Background(), "ninguem@atimus.agr.br", "senha-admin")
	_, wrongErr := service.Login(context.Background(), "ops@atimus.agr.br", "senha-errada")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownErr).Code)
}

/*
TestLogin_MissingJWTSecret checks lenient boot: correct credentials still
fail with a configuration error when no secret is set.
*/
func TestLogin_MissingJWTSecret(t *testing.T) {
	service, _ := newTestService(t, "")

	_, err := service.Login(context.Background(), "ops@atimus.agr.br", "senha-admin")
	require.Error(t, err)
	assert.Equal(t, "CONFIGURATION_ERROR", apperr.As(err).Code)
}
