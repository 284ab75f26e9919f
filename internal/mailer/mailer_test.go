// Copyright (c) 2026 Atimus. All rights reserved.

package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atimus/edital-api/internal/mailer"
)

/*
TestLinks_Verification checks the API-hosted verification URL.
*/
func TestLinks_Verification(t *testing.T) {
	links := mailer.NewLinks("http://127.0.0.1:8000/", "https://login.atimus.agr.br/index.html")

	got := links.Verification("tok123")
	assert.Equal(t, "http://127.0.0.1:8000/cliente/verificar-email?token=tok123", got)
}

/*
TestLinks_Reset checks the separator logic against login URLs with and
without an existing query string.
*/
func TestLinks_Reset(t *testing.T) {
	plain := mailer.NewLinks("http://127.0.0.1:8000", "https://login.atimus.agr.br/index.html")
	assert.Equal(t,
		"https://login.atimus.agr.br/index.html?reset_token=tok123",
		plain.Reset("tok123"))

	withQuery := mailer.NewLinks("http://127.0.0.1:8000", "https://login.atimus.agr.br/index.html?lang=pt")
	assert.Equal(t,
		"https://login.atimus.agr.br/index.html?lang=pt&reset_token=tok123",
		withQuery.Reset("tok123"))
}

/*
TestLinks_For dispatches by message kind.
*/
func TestLinks_For(t *testing.T) {
	links := mailer.NewLinks("http://127.0.0.1:8000", "https://login.atimus.agr.br/index.html")

	assert.Contains(t, links.For(mailer.KindVerification, "tok"), "/cliente/verificar-email?token=tok")
	assert.Contains(t, links.For(mailer.KindReset, "tok"), "reset_token=tok")
}
