// Copyright (c) 2026 Atimus. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

// OpaqueTokenBytes is the entropy of every minted token (session, email
// verification, password reset). 32 bytes keeps tokens unguessable even
// against an offline attacker.
const OpaqueTokenBytes = 32

// NewOpaqueToken mints a cryptographically random, URL-safe token.
//
// The same generator serves three artifact kinds: session tokens and email
// verification tokens (stored raw), and reset tokens (handed raw to the user,
// never persisted — only the peppered digest is stored).
func NewOpaqueToken() (string, error) {
	raw := make([]byte, OpaqueTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to read entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// # Reset Token Digests

// Minter computes peppered digests of raw reset tokens.
//
// # Pepper
//
// The pepper is a process-wide secret concatenated with the raw token before
// hashing. If the database leaks without the environment also leaking, stored
// digests cannot be reversed into usable reset tokens.
type Minter struct {
	pepper string
}

// NewMinter constructs a Minter. An empty pepper is accepted here — startup
// stays lenient, and only reset-token operations fail when the pepper is
// actually required.
func NewMinter(pepper string) *Minter {
	return &Minter{pepper: pepper}
}

// DigestResetToken returns hex(SHA-256(rawToken || pepper)).
//
// Deterministic: the same raw token always digests to the same 64-character
// hex string, which is what makes digest-based lookup possible without ever
// persisting the raw value.
func (minter *Minter) DigestResetToken(rawToken string) (string, error) {
	if minter.pepper == "" {
		return "", apperr.Configuration(errors.New("RESET_TOKEN_PEPPER is not set"))
	}
	sum := sha256.Sum256([]byte(rawToken + minter.pepper))
	return hex.EncodeToString(sum[:]), nil
}
