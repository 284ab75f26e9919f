// Copyright (c) 2026 Atimus. All rights reserved.

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "nome", "Maria", false},
		{"empty_string", "nome", "", true},
		{"whitespace_only", "nome", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "maria@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "maria@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_TaxID checks CPF/CNPJ plausibility (digit count only).
*/
func TestValidator_TaxID(t *testing.T) {
	tests := []struct {
		name    string
		taxID   string
		isValid bool
	}{
		{"cpf_plain", "52998224725", true},
		{"cpf_formatted", "529.982.247-25", true},
		{"cnpj_plain", "11222333000181", true},
		{"cnpj_formatted", "11.222.333/0001-81", true},
		{"too_short", "1234567890", false},
		{"twelve_digits", "123456789012", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.TaxID("cpf_cnpj", tt.taxID)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_LengthBounds checks the password-style min/max window.
*/
func TestValidator_LengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"at_min", "abcdef", true},
		{"below_min", "abcde", false},
		{"at_max", strings.Repeat("a", 64), true},
		{"above_max", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MinLen("senha", tt.value, 6).MaxLen("senha", tt.value, 64)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("nome", "Maria").
		MinLen("nome", "Maria", 3).
		MaxLen("nome", "Maria", 10).
		Email("email", "maria@atimus.agr.br").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nome", "").           // Fails
		MinLen("nome", "a", 5).         // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
