// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package admin implements the internal operator identity of the platform.

Admins are provisioned out-of-band (see cmd/createadmin) and authenticate
with short-lived JWT bearer tokens, unlike clients, whose sessions are
opaque cookie tokens. The two populations never share credentials or
storage.
*/
package admin

import "time"

// # Domain Entities

// Account represents a platform operator.
//
// Role is persisted per account and flows into the bearer token claims.
// Every provisioned operator today carries [sec.RoleAdmin].
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"criado_em"`
}

// # Constants

// TokenTTL is the lifetime of an admin access token. Short (8 hours) so a
// leaked token ages out within a working day.
const TokenTTL = 8 * time.Hour

// JSON field names of the admin API.
const (
	FieldEmail = "email"
	FieldSenha = "senha"
)
