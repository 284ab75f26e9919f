// Copyright (c) 2026 Atimus. All rights reserved.

package clients

import (
	"context"
	"time"
)

// # Persistence Contracts

// Store is the persistence boundary of the client identity core.
//
// Every mutation that touches token state is a single atomic statement (or
// transaction) on the implementation side: the service layer never performs
// a read-check-write sequence across calls for security-sensitive state.
type Store interface {
	// Create inserts a new, unverified account. Returns a conflict error
	// when the email or tax ID is already registered.
	Create(ctx context.Context, account *Account) error

	// FindByEmail returns the account with the given email, or a not-found
	// error.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByVerifyToken returns the account holding the given email
	// verification token, or a not-found error.
	FindByVerifyToken(ctx context.Context, token string) (*Account, error)

	// FindBySessionToken returns the account holding the given session
	// token, or a not-found error. Expiry is NOT checked here; the service
	// owns that rule.
	FindBySessionToken(ctx context.Context, token string) (*Account, error)

	// MarkVerified flips the account to verified and clears the
	// verification token in one statement.
	MarkVerified(ctx context.Context, accountID string) error

	// EstablishSession stores a fresh session token and expiry, clearing
	// any pending reset-token state in the same statement.
	EstablishSession(ctx context.Context, accountID string, token string, expiresAt time.Time) error

	// ExtendSession pushes the expiry of an existing session forward. The
	// token guard ensures a concurrent re-login does not get its new
	// session clobbered by a stale renewal.
	ExtendSession(ctx context.Context, accountID string, token string, expiresAt time.Time) error

	// ArmResetToken stores a reset-token digest and expiry, but only if the
	// account holds no still-valid reset token at instant now. Reports
	// whether the token was armed.
	ArmResetToken(ctx context.Context, accountID string, digest string, expiresAt time.Time, now time.Time) (bool, error)

	// RedeemResetToken finds the account whose unexpired reset digest
	// matches, sets the new password hash, and clears both the reset state
	// and any active session, all in one statement. Reports whether a row
	// was redeemed.
	RedeemResetToken(ctx context.Context, digest string, passwordHash string, now time.Time) (bool, error)
}
