// Copyright (c) 2026 Atimus. All rights reserved.

package sec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/sec"
)

/*
TestNewOpaqueToken checks entropy size, URL-safety, and uniqueness.
*/
func TestNewOpaqueToken(t *testing.T) {
	first, err := sec.NewOpaqueToken()
	require.NoError(t, err)
	second, err := sec.NewOpaqueToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	decoded, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, sec.OpaqueTokenBytes)
}

/*
TestMinter_DigestDeterministic checks that the digest is stable for a given
token and pepper, and changes with either.
*/
func TestMinter_DigestDeterministic(t *testing.T) {
	minter := sec.NewMinter("pepper-a")

	first, err := minter.DigestResetToken("raw-token")
	require.NoError(t, err)
	second, err := minter.DigestResetToken("raw-token")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex SHA-256

	other, err := minter.DigestResetToken("other-token")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	otherPepper, err := sec.NewMinter("pepper-b").DigestResetToken("raw-token")
	require.NoError(t, err)
	assert.NotEqual(t, first, otherPepper)
}

/*
TestMinter_MissingPepper checks the lenient-boot contract: construction works,
digesting fails with a configuration error.
*/
func TestMinter_MissingPepper(t *testing.T) {
	minter := sec.NewMinter("")

	_, err := minter.DigestResetToken("raw-token")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFIGURATION_ERROR", ae.Code)
	assert.Equal(t, 500, ae.HTTPStatus)
}

/*
TestMaskEmail covers the logging redaction rules.
*/
func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"normal", "joao.silva@example.com", "jo***@example.com"},
		{"short_local", "a@example.com", "a***@example.com"},
		{"two_char_local", "ab@example.com", "ab***@example.com"},
		{"no_at", "not-an-email", "***"},
		{"empty", "", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.MaskEmail(tt.email))
		})
	}
}
