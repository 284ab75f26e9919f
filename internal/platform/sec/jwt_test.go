// Copyright (c) 2026 Atimus. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/sec"
)

/*
TestTokenService_RoundTrip checks issue/verify with subject, role, and issuer
intact.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("test-secret", "atimus.agr.br")

	token, err := service.Issue("ops@atimus.agr.br", sec.RoleAdmin, 8*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@atimus.agr.br", claims.Subject)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
	assert.Equal(t, "atimus.agr.br", claims.Issuer)
}

/*
TestTokenService_Expired checks that an already-expired token is rejected
with the generic 401.
*/
func TestTokenService_Expired(t *testing.T) {
	service := sec.NewTokenService("test-secret", "atimus.agr.br")

	token, err := service.Issue("ops@atimus.agr.br", sec.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestTokenService_WrongSecret checks that a token signed with another secret
fails with the same generic 401 as any other failure.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer := sec.NewTokenService("secret-one", "atimus.agr.br")
	verifier := sec.NewTokenService("secret-two", "atimus.agr.br")

	token, err := issuer.Issue("ops@atimus.agr.br", sec.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestTokenService_Tampered checks that modifying the token body invalidates
the signature.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := sec.NewTokenService("test-secret", "atimus.agr.br")

	token, err := service.Issue("ops@atimus.agr.br", sec.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = service.Verify(tampered)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestTokenService_MissingSecret checks the lenient-boot contract: the service
constructs fine, then both issue and verify fail with a configuration error.
*/
func TestTokenService_MissingSecret(t *testing.T) {
	service := sec.NewTokenService("", "atimus.agr.br")

	_, err := service.Issue("ops@atimus.agr.br", sec.RoleAdmin, time.Hour)
	require.Error(t, err)
	assert.Equal(t, "CONFIGURATION_ERROR", apperr.As(err).Code)

	_, err = service.Verify("qualquer-coisa")
	require.Error(t, err)
	assert.Equal(t, "CONFIGURATION_ERROR", apperr.As(err).Code)
}
