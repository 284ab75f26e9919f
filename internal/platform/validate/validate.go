// Copyright (c) 2026 Atimus. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Validation runs in the delivery layer BEFORE any persistence access: a
// request that fails length bounds is rejected without touching the database.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

var (
	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	// nonDigit strips formatting from tax IDs and phone numbers.
	nonDigit = regexp.MustCompile(`\D`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Payload JSON inválido")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "Campo obrigatório")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Máximo de %d caracteres", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Mínimo de %d caracteres", min))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Deve ser um e-mail válido")
	}
	return v
}

// TaxID fails if the value is not a plausible CPF (11 digits) or CNPJ
// (14 digits). Punctuation is ignored; check-digit arithmetic is not
// performed here — the document registry is the source of truth.
func (v *Validator) TaxID(field, value string) *Validator {
	digits := nonDigit.ReplaceAllString(value, "")
	if len(digits) != 11 && len(digits) != 14 {
		v.add(field, "Deve ser um CPF ou CNPJ válido")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, "Deve ser um UUID válido")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("senha", len(senha) > 64, "Máximo de 64 caracteres")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Falha de validação", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Falha de validação", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
