// Copyright (c) 2026 Atimus. All rights reserved.

package editais

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/atimus/edital-api/pkg/slug"
	"github.com/atimus/edital-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the editais catalog and the keyword assistant.
type Service struct {
	store  Store
	logger *slog.Logger

	// shareBaseURL is the frontend prefix that, concatenated with a slug,
	// yields a shareable edital link.
	shareBaseURL string
}

// NewService creates the editais service.
func NewService(store Store, shareBaseURL string, logger *slog.Logger) *Service {
	return &Service{store: store, shareBaseURL: shareBaseURL, logger: logger}
}

// List returns the full catalog with share links populated, newest first.
func (service *Service) List(ctx context.Context) ([]*Edital, error) {
	editais, err := service.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, edital := range editais {
		service.decorate(edital)
	}
	return editais, nil
}

// Get returns a single edital with its share link populated.
func (service *Service) Get(ctx context.Context, id string) (*Edital, error) {
	edital, err := service.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	service.decorate(edital)
	return edital, nil
}

// EditalInput carries the admin-provided fields for create and update.
type EditalInput struct {
	Titulo             string
	JSONData           json.RawMessage
	ArquivosJSON       json.RawMessage
	DataFinalSubmissao *time.Time
	PDFURL             string
}

/*
Create publishes a new edital.

Description: The slug is derived from the title plus a short unique suffix,
then frozen: edits to the title later never change previously shared links.

Parameters:
  - ctx: context.Context
  - input: EditalInput (Already validated by the transport layer)

Returns:
  - *Edital: The created edital with its share link
  - error: Internal errors
*/
func (service *Service) Create(ctx context.Context, input EditalInput) (*Edital, error) {
	id := uuid.New()

	edital := &Edital{
		ID:                 id,
		Titulo:             input.Titulo,
		Slug:               slugFor(input.Titulo, id),
		JSONData:           input.JSONData,
		ArquivosJSON:       input.ArquivosJSON,
		DataFinalSubmissao: input.DataFinalSubmissao,
		PDFURL:             input.PDFURL,
		CreatedAt:          time.Now().UTC(),
	}

	if err := service.store.Create(ctx, edital); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "edital_created",
		slog.String("edital_id", edital.ID),
		slog.String("slug", edital.Slug),
	)

	service.decorate(edital)
	return edital, nil
}

// Update replaces the mutable fields of an existing edital.
func (service *Service) Update(ctx context.Context, id string, input EditalInput) (*Edital, error) {
	edital, err := service.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	edital.Titulo = input.Titulo
	edital.JSONData = input.JSONData
	edital.ArquivosJSON = input.ArquivosJSON
	edital.DataFinalSubmissao = input.DataFinalSubmissao
	edital.PDFURL = input.PDFURL

	if err := service.store.Update(ctx, edital); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "edital_updated",
		slog.String("edital_id", edital.ID),
	)

	service.decorate(edital)
	return edital, nil
}

// Delete removes an edital from the catalog.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.store.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "edital_deleted", slog.String("edital_id", id))
	return nil
}

// # Keyword Assistant

// chatSearchLimit caps how many editais a single assistant answer cites.
const chatSearchLimit = 5

// minTermLength filters out articles and prepositions ("de", "do", "em")
// that would match everything.
const minTermLength = 3

// greetings are answered directly without touching the catalog.
var greetings = map[string]bool{
	"oi": true, "olá": true, "ola": true, "opa": true,
	"bom dia": true, "boa tarde": true, "boa noite": true,
}

// ChatAnswer is the assistant's reply to a free-text question.
type ChatAnswer struct {
	Resposta string    `json:"resposta"`
	Editais  []*Edital `json:"editais,omitempty"`
}

/*
Chat answers a free-text question with matching editais.

Description: Pure keyword retrieval, no language model involved. The message
is tokenized, short words are dropped, and the remaining terms are
OR-matched against the catalog. Greetings get a canned introduction.

Parameters:
  - ctx: context.Context
  - message: string

Returns:
  - *ChatAnswer: Reply text and up to 5 cited editais
  - error: Internal errors
*/
func (service *Service) Chat(ctx context.Context, message string) (*ChatAnswer, error) {
	normalized := strings.ToLower(strings.TrimSpace(message))

	if greetings[normalized] {
		return &ChatAnswer{
			Resposta: "Olá! Sou o assistente de editais da Atimus. Pergunte sobre temas, áreas ou prazos e eu busco os editais relacionados.",
		}, nil
	}

	terms := SearchTerms(normalized)
	if len(terms) == 0 {
		return &ChatAnswer{
			Resposta: "Não entendi sua pergunta. Tente citar um tema, como \"inovação\" ou \"agricultura\".",
		}, nil
	}

	matches, err := service.store.SearchByTerms(ctx, terms, chatSearchLimit)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return &ChatAnswer{
			Resposta: "Não encontrei editais relacionados à sua busca. Tente outras palavras-chave.",
		}, nil
	}

	for _, edital := range matches {
		service.decorate(edital)
	}

	return &ChatAnswer{
		Resposta: fmt.Sprintf("Encontrei %d edital(is) relacionado(s) à sua busca:", len(matches)),
		Editais:  matches,
	}, nil
}

// SearchTerms tokenizes a normalized message into searchable keywords.
// Surrounding punctuation is stripped ("inovação?" searches as "inovação")
// and words shorter than three characters are dropped.
func SearchTerms(normalized string) []string {
	words := strings.Fields(normalized)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(word)) >= minTermLength {
			terms = append(terms, word)
		}
	}
	return terms
}

// # Internal Helpers

// decorate fills the computed share link.
func (service *Service) decorate(edital *Edital) {
	edital.ShareLink = service.shareBaseURL + edital.Slug
}

// slugFor derives the frozen slug from the title and a short unique suffix
// taken from the tail of the UUID (its random section).
func slugFor(titulo string, id string) string {
	suffix := id
	if len(id) > 8 {
		suffix = id[len(id)-8:]
	}

	base := slug.From(titulo)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
