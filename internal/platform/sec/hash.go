// Copyright (c) 2026 Atimus. All rights reserved.

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptInputLimit is the effective input size of the bcrypt algorithm.
// Everything past the first 72 bytes is ignored, so we truncate explicitly
// instead of letting GenerateFromPassword fail with ErrPasswordTooLong.
//
// Consequence (documented behavior): two passwords that differ only beyond
// byte 72 hash and verify as the same password.
const bcryptInputLimit = 72

// truncate caps the password at bcrypt's input limit.
func truncate(plainTextPassword string) []byte {
	raw := []byte(plainTextPassword)
	if len(raw) > bcryptInputLimit {
		raw = raw[:bcryptInputLimit]
	}
	return raw
}

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// Each call salts independently, so hashing the same password twice yields
// two different digests.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(truncate(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a plain-text password with its stored bcrypt digest.
//
// A malformed or corrupt digest verifies as false — it never panics or
// surfaces an error to the caller. Callers must still perform the account
// lookup first and collapse "no account" and "wrong password" into the same
// client-facing failure.
func CheckPassword(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), truncate(plainTextPassword))
	return err == nil
}
