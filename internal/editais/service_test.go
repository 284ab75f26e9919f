// Copyright (c) 2026 Atimus. All rights reserved.

package editais_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atimus/edital-api/internal/editais"
	"github.com/atimus/edital-api/internal/platform/apperr"
)

// # Test Doubles

// fakeStore keeps editais in memory and mimics the ILIKE matching of the SQL
// implementation (case-insensitive substring over title and content).
type fakeStore struct {
	items []*editais.Edital
}

func (store *fakeStore) List(_ context.Context) ([]*editais.Edital, error) {
	return store.items, nil
}

func (store *fakeStore) FindByID(_ context.Context, id string) (*editais.Edital, error) {
	for _, item := range store.items {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Edital")
}

func (store *fakeStore) Create(_ context.Context, edital *editais.Edital) error {
	copied := *edital
	store.items = append(store.items, &copied)
	return nil
}

func (store *fakeStore) Update(_ context.Context, edital *editais.Edital) error {
	for index, item := range store.items {
		if item.ID == edital.ID {
			copied := *edital
			store.items[index] = &copied
			return nil
		}
	}
	return apperr.NotFound("Edital")
}

func (store *fakeStore) Delete(_ context.Context, id string) error {
	for index, item := range store.items {
		if item.ID == id {
			store.items = append(store.items[:index], store.items[index+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Edital")
}

func (store *fakeStore) SearchByTerms(_ context.Context, terms []string, limit int) ([]*editais.Edital, error) {
	matches := make([]*editais.Edital, 0)
	for _, item := range store.items {
		haystack := strings.ToLower(item.Titulo + " " + string(item.JSONData))
		for _, term := range terms {
			if strings.Contains(haystack, strings.ToLower(term)) {
				matches = append(matches, item)
				break
			}
		}
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func newTestService(store *fakeStore) *editais.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return editais.NewService(store, "https://editais.atimus.agr.br/index.html?id=", logger)
}

// # Catalog

/*
TestCreate_SlugAndShareLink checks that the slug is accent-free, carries a
unique suffix, and feeds the computed share link.
*/
func TestCreate_SlugAndShareLink(t *testing.T) {
	service := newTestService(&fakeStore{})

	edital, err := service.Create(context.Background(), editais.EditalInput{
		Titulo: "Edital de Inovação Agrícola 2026",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(edital.Slug, "edital-de-inovacao-agricola-2026-"))
	assert.True(t, strings.HasPrefix(edital.ShareLink, "https://editais.atimus.agr.br/index.html?id="))
	assert.True(t, strings.HasSuffix(edital.ShareLink, edital.Slug))
}

/*
TestUpdate_SlugFrozen checks that editing the title does not move the slug,
so previously shared links keep resolving.
*/
func TestUpdate_SlugFrozen(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	created, err := service.Create(context.Background(), editais.EditalInput{
		Titulo: "Edital Original",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, editais.EditalInput{
		Titulo: "Título Completamente Novo",
	})
	require.NoError(t, err)

	assert.Equal(t, "Título Completamente Novo", updated.Titulo)
	assert.Equal(t, created.Slug, updated.Slug)
}

// # Keyword Assistant

/*
TestChat_Greeting checks the canned introduction for plain greetings.
*/
func TestChat_Greeting(t *testing.T) {
	service := newTestService(&fakeStore{})

	for _, greeting := range []string{"oi", "Olá", "BOM DIA", "  boa noite  "} {
		answer, err := service.Chat(context.Background(), greeting)
		require.NoError(t, err)
		assert.Contains(t, answer.Resposta, "assistente de editais")
		assert.Empty(t, answer.Editais)
	}
}

/*
TestChat_ShortWordsOnly checks that a message with no usable keyword gets
the clarification prompt instead of a catalog query.
*/
func TestChat_ShortWordsOnly(t *testing.T) {
	service := newTestService(&fakeStore{})

	answer, err := service.Chat(context.Background(), "o de em")
	require.NoError(t, err)
	assert.Contains(t, answer.Resposta, "Não entendi")
	assert.Empty(t, answer.Editais)
}

/*
TestChat_MatchesAndDecorates checks keyword retrieval, the citation cap, and
that cited editais carry share links.
*/
func TestChat_MatchesAndDecorates(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	_, err := service.Create(context.Background(), editais.EditalInput{
		Titulo:   "Edital de Inovação Agrícola",
		JSONData: []byte(`{"area": "tecnologia no campo"}`),
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), editais.EditalInput{
		Titulo: "Edital de Pecuária Leiteira",
	})
	require.NoError(t, err)

	answer, err := service.Chat(context.Background(), "tem algo sobre inovação?")
	require.NoError(t, err)

	require.Len(t, answer.Editais, 1)
	assert.Equal(t, "Edital de Inovação Agrícola", answer.Editais[0].Titulo)
	assert.NotEmpty(t, answer.Editais[0].ShareLink)
	assert.Contains(t, answer.Resposta, "Encontrei 1")
}

/*
TestChat_NoMatches checks the fallback reply when no edital matches.
*/
func TestChat_NoMatches(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	_, err := service.Create(context.Background(), editais.EditalInput{
		Titulo: "Edital de Pecuária Leiteira",
	})
	require.NoError(t, err)

	answer, err := service.Chat(context.Background(), "biotecnologia marinha")
	require.NoError(t, err)
	assert.Contains(t, answer.Resposta, "Não encontrei")
	assert.Empty(t, answer.Editais)
}

/*
TestSearchTerms checks the tokenizer: short words dropped, accents kept.
*/
func TestSearchTerms(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"drops_short_words", "tem algo de inovação aí", []string{"tem", "algo", "inovação"}},
		{"empty", "", []string{}},
		{"only_short", "o a de", []string{}},
		{"multibyte_counted_as_runes", "aí é ok", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editais.SearchTerms(tt.message))
		})
	}
}
