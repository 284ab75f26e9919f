// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package clients implements the client identity and session lifecycle.

It owns the three credential artifacts a client account can hold — the email
verification token, the opaque session token, and the peppered reset-token
digest — and every state transition between them.

# Architecture

This layer is the "Truth" of the system. The [Account] entity and the
[Service] rules together enforce the security invariants: single-use reset
tokens, anti-enumeration responses, login invalidating pending resets, and
rolling session renewal.
*/
package clients

import "time"

// # Domain Entities

// Account represents a registered client of the edital platform.
//
// # Token Invariants
//
//   - SessionToken and SessionExpiresAt are always set or cleared together.
//   - ResetTokenDigest and ResetExpiresAt are always set or cleared together;
//     a digest past its expiry is stale and treated as invalid even before
//     any cleanup runs.
//   - EmailVerifyToken is cleared the moment the account is verified, so the
//     link can never be replayed.
//   - The raw reset token is NEVER stored; only its peppered digest is.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone,omitempty"`

	// TaxID is the CPF/CNPJ. Unique across all accounts, like Email.
	TaxID string `json:"cpf_cnpj,omitempty"`

	PasswordHash string `json:"-"`

	// EmailVerified gates login: a false value refuses login regardless of
	// password correctness.
	EmailVerified        bool       `json:"email_verificado"`
	EmailVerifyToken     *string    `json:"-"`
	EmailVerifyExpiresAt *time.Time `json:"-"`

	SessionToken     *string    `json:"-"`
	SessionExpiresAt *time.Time `json:"-"`

	ResetTokenDigest *string    `json:"-"`
	ResetExpiresAt   *time.Time `json:"-"`

	// LGPD consent flags captured at signup.
	TermsAccepted  bool `json:"aceite_termos"`
	MarketingOptIn bool `json:"aceite_marketing"`

	CreatedAt time.Time `json:"criado_em"`
}

// HasActiveReset reports whether the account holds a still-valid reset token
// at the given instant.
func (account *Account) HasActiveReset(now time.Time) bool {
	return account.ResetTokenDigest != nil &&
		account.ResetExpiresAt != nil &&
		account.ResetExpiresAt.After(now)
}

// # Field Identifiers

// JSON field names of the public client API (Portuguese wire contract).
const (
	FieldNome            = "nome"
	FieldEmail           = "email"
	FieldSenha           = "senha"
	FieldNovaSenha       = "nova_senha"
	FieldTelefone        = "telefone"
	FieldCPFCNPJ         = "cpf_cnpj"
	FieldToken           = "token"
	FieldAceiteTermos    = "aceite_termos"
	FieldAceiteMarketing = "aceite_marketing"
)
