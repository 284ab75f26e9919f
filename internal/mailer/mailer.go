// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package mailer defines the outbound email contract for account lifecycle
messages (verification links and password reset links).

# Architecture

The identity core depends only on the [Mailer] interface and reports
delivery as a boolean outcome. A failed delivery never fails the operation
that triggered it: the caller falls back to logging the actionable link so
an operator can hand it to the user.
*/
package mailer

import (
	"context"
	"strings"
)

// # Message Kinds

// Kind identifies which lifecycle email is being sent.
type Kind string

const (
	// KindVerification carries the email verification link after signup.
	KindVerification Kind = "verification"

	// KindReset carries the password reset link.
	KindReset Kind = "reset"
)

// # Contracts

// Mailer delivers a lifecycle email carrying a raw one-time token.
//
// Send returns true when the message was handed to the transport, false
// otherwise. Implementations must not return an error: delivery is
// best-effort and the caller owns the fallback.
type Mailer interface {
	Send(ctx context.Context, kind Kind, recipient string, rawToken string) bool
}

// # Link Composition

// Links builds the user-facing URLs embedded in lifecycle emails.
type Links struct {
	// baseAPIURL is the public address of this API, used for the
	// verification endpoint that the user's mail client opens directly.
	baseAPIURL string

	// frontendLoginURL is the login page of the web frontend, used as the
	// landing surface for password resets.
	frontendLoginURL string
}

// NewLinks constructs a Links helper from the configured public URLs.
func NewLinks(baseAPIURL string, frontendLoginURL string) *Links {
	return &Links{
		baseAPIURL:       strings.TrimRight(baseAPIURL, "/"),
		frontendLoginURL: frontendLoginURL,
	}
}

// Verification returns the clickable email verification URL for a raw token.
func (l *Links) Verification(rawToken string) string {
	return l.baseAPIURL + "/cliente/verificar-email?token=" + rawToken
}

// Reset returns the frontend URL that opens the password reset form with the
// raw token preloaded. The separator respects any query string already
// present on the configured login URL.
func (l *Links) Reset(rawToken string) string {
	separator := "?"
	if strings.Contains(l.frontendLoginURL, "?") {
		separator = "&"
	}
	return l.frontendLoginURL + separator + "reset_token=" + rawToken
}

// For returns the link matching the message kind.
func (l *Links) For(kind Kind, rawToken string) string {
	if kind == KindReset {
		return l.Reset(rawToken)
	}
	return l.Verification(rawToken)
}
