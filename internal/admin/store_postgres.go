// Copyright (c) 2026 Atimus. All rights reserved.

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

// # Admin Repository

// Store is the persistence boundary for admin accounts.
type Store interface {
	// FindByEmail returns the admin with the given email, or a not-found error.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// Upsert creates the admin or replaces its password hash when the email
	// already exists. Used by the provisioning command only.
	Upsert(ctx context.Context, account *Account) error
}

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
FindByEmail retrieves an admin record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated admin entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, email, passwordhash, role, createdat
		FROM admin.account
		WHERE email = $1`

	account := &Account{}
	err := store.pool.QueryRow(context, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Administrador")
		}
		return nil, fmt.Errorf("postgres_admin_store_find_by_email_failed: %w", err)
	}

	return account, nil
}

/*
Upsert creates or re-credentials an admin account.

Description: Provisioning path. The email is the conflict key so re-running
the command rotates the password instead of failing.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: Database errors
*/
func (store *PostgresStore) Upsert(context context.Context, account *Account) error {
	const query = `
		INSERT INTO admin.account (id, email, passwordhash, role, createdat)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET passwordhash = EXCLUDED.passwordhash, role = EXCLUDED.role`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := store.pool.Exec(context, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_upsert_failed: %w", err)
	}

	return nil
}
