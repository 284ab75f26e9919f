// Copyright (c) 2026 Atimus. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atimus/edital-api/pkg/slug"
)

/*
TestFrom covers Portuguese diacritics, punctuation, and hyphen collapsing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"diacritics", "Edital de Inovação Agrícola", "edital-de-inovacao-agricola"},
		{"cedilla", "Licitação Pública", "licitacao-publica"},
		{"punctuation", "Edital nº 42/2026 — Fase 2", "edital-n-42-2026-fase-2"},
		{"collapses_hyphens", "a  --  b", "a-b"},
		{"trims_edges", "  olá!  ", "ola"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
