// Copyright (c) 2026 Atimus. All rights reserved.

package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

// # Client Repository

// accountColumns is the canonical column list shared by every SELECT so the
// scan helper stays in lockstep with the schema.
const accountColumns = `
	id, name, email, phone, taxid, passwordhash,
	emailverified, emailverifytoken, emailverifyexpiresat,
	sessiontoken, sessionexpiresat,
	resettokendigest, resetexpiresat,
	termsaccepted, marketingoptin, createdat`

// PostgresStore implements the Store interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows and unique-constraint
// violations) are mapped to domain-friendly [apperr.AppError] types to avoid
// leaking storage implementation details.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Create persists a new client record into the clients.account table.

Description: Runs inside a transaction: a single combined lookup rejects
duplicate email or tax ID before the insert, and the unique constraints
backstop any race between concurrent signups.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email/tax ID, or database errors
*/
func (store *PostgresStore) Create(context context.Context, account *Account) error {
	const checkQuery = `
		SELECT EXISTS (
			SELECT 1 FROM clients.account WHERE email = $1 OR taxid = $2
		)`

	const insertQuery = `
		INSERT INTO clients.account (
			id, name, email, phone, taxid, passwordhash,
			emailverified, emailverifytoken, emailverifyexpiresat,
			termsaccepted, marketingoptin, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	transaction, err := store.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_client_store_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Combined duplicate lookup (email OR tax ID in one round trip).
	var exists bool
	if err := transaction.QueryRow(context, checkQuery, account.Email, account.TaxID).Scan(&exists); err != nil {
		return fmt.Errorf("postgres_client_store_duplicate_check_failed: %w", err)
	}
	if exists {
		return apperr.Conflict("E-mail ou CPF/CNPJ já cadastrado")
	}

	// 2. Insert the unverified account.
	_, err = transaction.Exec(context, insertQuery,
		account.ID,
		account.Name,
		account.Email,
		account.Phone,
		account.TaxID,
		account.PasswordHash,
		account.EmailVerified,
		account.EmailVerifyToken,
		account.EmailVerifyExpiresAt,
		account.TermsAccepted,
		account.MarketingOptIn,
		account.CreatedAt,
	)
	if err != nil {
		// Unique constraint backstop for the race two concurrent signups
		// can win against the pre-check.
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
			return apperr.Conflict("E-mail ou CPF/CNPJ já cadastrado")
		}
		return fmt.Errorf("postgres_client_store_create_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_client_store_commit_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a client record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByEmail(context context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM clients.account WHERE email = $1`
	return store.findOne(context, query, email)
}

/*
FindByVerifyToken retrieves the client holding the given email verification token.

Parameters:
  - context: context.Context
  - token: string (Raw verification token from the emailed link)

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByVerifyToken(context context.Context, token string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM clients.account WHERE emailverifytoken = $1`
	return store.findOne(context, query, token)
}

/*
FindBySessionToken retrieves the client holding the given session token.

Description: Expiry is intentionally NOT filtered here; the service layer
owns the expiry rule so it can distinguish an expired session from an
unknown token in its logs.

Parameters:
  - context: context.Context
  - token: string (Opaque session token from the cookie)

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindBySessionToken(context context.Context, token string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM clients.account WHERE sessiontoken = $1`
	return store.findOne(context, query, token)
}

/*
MarkVerified flips an account to verified and clears the verification token.

Description: One statement so a verified account can never retain a replayable
verification link.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) MarkVerified(context context.Context, accountID string) error {
	const query = `
		UPDATE clients.account
		SET emailverified = TRUE, emailverifytoken = NULL, emailverifyexpiresat = NULL
		WHERE id = $1`

	tag, err := store.pool.Exec(context, query, accountID)
	if err != nil {
		return fmt.Errorf("postgres_client_store_mark_verified_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Conta")
	}
	return nil
}

/*
EstablishSession stores a fresh session token for an account.

Description: Clears any pending reset-token state in the same statement: a
successful login proves the password is known, so an outstanding reset link
must die with it.

Parameters:
  - context: context.Context
  - accountID: string
  - token: string (Opaque session token)
  - expiresAt: time.Time (UTC)

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) EstablishSession(context context.Context, accountID string, token string, expiresAt time.Time) error {
	const query = `
		UPDATE clients.account
		SET sessiontoken = $2, sessionexpiresat = $3,
		    resettokendigest = NULL, resetexpiresat = NULL
		WHERE id = $1`

	tag, err := store.pool.Exec(context, query, accountID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("postgres_client_store_establish_session_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Conta")
	}
	return nil
}

/*
ExtendSession pushes the expiry of an existing session forward.

Description: Guarded by the current token value so a renewal racing a fresh
login never resurrects the superseded session.

Parameters:
  - context: context.Context
  - accountID: string
  - token: string (Session token being renewed)
  - expiresAt: time.Time (New expiry, UTC)

Returns:
  - error: Database errors. A lost guard race is not an error.
*/
func (store *PostgresStore) ExtendSession(context context.Context, accountID string, token string, expiresAt time.Time) error {
	const query = `
		UPDATE clients.account
		SET sessionexpiresat = $3
		WHERE id = $1 AND sessiontoken = $2`

	if _, err := store.pool.Exec(context, query, accountID, token, expiresAt); err != nil {
		return fmt.Errorf("postgres_client_store_extend_session_failed: %w", err)
	}
	return nil
}

/*
ArmResetToken stores a reset-token digest, unless a valid one is outstanding.

Description: The WHERE clause is the anti-flood guard: the update only lands
when the account holds no unexpired reset token, so repeated requests inside
the validity window are silent no-ops and the original emailed link stays
authoritative.

Parameters:
  - context: context.Context
  - accountID: string
  - digest: string (Peppered SHA-256 digest, hex)
  - expiresAt: time.Time (UTC)
  - now: time.Time (Reference instant for the outstanding-token check, UTC)

Returns:
  - bool: Whether the token was armed
  - error: Database errors
*/
func (store *PostgresStore) ArmResetToken(context context.Context, accountID string, digest string, expiresAt time.Time, now time.Time) (bool, error) {
	const query = `
		UPDATE clients.account
		SET resettokendigest = $2, resetexpiresat = $3
		WHERE id = $1 AND (resetexpiresat IS NULL OR resetexpiresat <= $4)`

	tag, err := store.pool.Exec(context, query, accountID, digest, expiresAt, now)
	if err != nil {
		return false, fmt.Errorf("postgres_client_store_arm_reset_failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

/*
RedeemResetToken consumes a reset token and installs a new password.

Description: Lookup, expiry check, password update, token clearing, and
session invalidation happen in one statement. The combined predicate makes
the token single-use under concurrency: only one of two racing redemptions
can match the digest before it is nulled.

Parameters:
  - context: context.Context
  - digest: string (Peppered digest of the presented raw token, hex)
  - passwordHash: string (bcrypt hash of the new password)
  - now: time.Time (Reference instant for the expiry check, UTC)

Returns:
  - bool: Whether a row was redeemed (false means invalid or expired token)
  - error: Database errors
*/
func (store *PostgresStore) RedeemResetToken(context context.Context, digest string, passwordHash string, now time.Time) (bool, error) {
	const query = `
		UPDATE clients.account
		SET passwordhash = $2,
		    resettokendigest = NULL, resetexpiresat = NULL,
		    sessiontoken = NULL, sessionexpiresat = NULL
		WHERE resettokendigest = $1 AND resetexpiresat > $3`

	tag, err := store.pool.Exec(context, query, digest, passwordHash, now)
	if err != nil {
		return false, fmt.Errorf("postgres_client_store_redeem_reset_failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// # Internal Helpers

// findOne executes a single-row account query and hydrates the entity.
func (store *PostgresStore) findOne(ctx context.Context, query string, argument any) (*Account, error) {
	account := &Account{}
	err := store.pool.QueryRow(ctx, query, argument).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Phone,
		&account.TaxID,
		&account.PasswordHash,
		&account.EmailVerified,
		&account.EmailVerifyToken,
		&account.EmailVerifyExpiresAt,
		&account.SessionToken,
		&account.SessionExpiresAt,
		&account.ResetTokenDigest,
		&account.ResetExpiresAt,
		&account.TermsAccepted,
		&account.MarketingOptIn,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Conta")
		}
		return nil, fmt.Errorf("postgres_client_store_find_failed: %w", err)
	}

	return account, nil
}
