// Copyright (c) 2026 Atimus. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip checks that a hashed password verifies and a wrong
one does not.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("segredo123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, sec.CheckPassword("segredo123", hash))
	assert.False(t, sec.CheckPassword("senhaerrada", hash))
}

/*
TestHashPassword_FreshSalt checks that two hashes of the same password differ.
*/
func TestHashPassword_FreshSalt(t *testing.T) {
	first, err := sec.HashPassword("segredo123")
	require.NoError(t, err)
	second, err := sec.HashPassword("segredo123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPassword("segredo123", first))
	assert.True(t, sec.CheckPassword("segredo123", second))
}

/*
TestHashPassword_TruncationAt72Bytes documents bcrypt's input limit: two
passwords differing only beyond byte 72 are the same password.
*/
func TestHashPassword_TruncationAt72Bytes(t *testing.T) {
	base := strings.Repeat("a", 72)
	hash, err := sec.HashPassword(base + "tail-one")
	require.NoError(t, err)

	assert.True(t, sec.CheckPassword(base+"tail-two", hash))
	assert.True(t, sec.CheckPassword(base, hash))
	assert.False(t, sec.CheckPassword(strings.Repeat("a", 71), hash))
}

/*
TestCheckPassword_MalformedDigest checks that a corrupt stored hash verifies
as false instead of erroring.
*/
func TestCheckPassword_MalformedDigest(t *testing.T) {
	assert.False(t, sec.CheckPassword("segredo123", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPassword("segredo123", ""))
}
