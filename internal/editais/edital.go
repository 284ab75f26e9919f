// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package editais implements the tender-notice catalog: the public listing,
the keyword assistant, and the admin-only CRUD surface.

# Architecture

Editais are write-rare, read-often documents. The structured payload
extracted from the source PDF lives in a JSONB column (json_data) rather
than in normalized tables, because its shape varies per funding agency and
the API only ever serves it whole.
*/
package editais

import (
	"encoding/json"
	"time"
)

// # Domain Entities

// Edital represents a published tender notice.
type Edital struct {
	ID     string `json:"id"`
	Titulo string `json:"titulo"`

	// Slug is the URL-safe identifier embedded in share links. Derived from
	// the title at creation time and stable thereafter.
	Slug string `json:"slug"`

	// JSONData holds the structured notice content (sections, deadlines,
	// eligibility). Schema varies per agency; served verbatim.
	JSONData json.RawMessage `json:"json_data,omitempty"`

	// ArquivosJSON lists the attachment descriptors (name, URL, size).
	ArquivosJSON json.RawMessage `json:"arquivos_json,omitempty"`

	DataFinalSubmissao *time.Time `json:"data_final_submissao,omitempty"`
	PDFURL             string     `json:"pdf_url,omitempty"`
	CreatedAt          time.Time  `json:"criado_em"`

	// ShareLink is computed at read time from the configured frontend URL;
	// it is never persisted.
	ShareLink string `json:"share_link,omitempty"`
}

// # Field Identifiers

// JSON field names of the editais API.
const (
	FieldTitulo             = "titulo"
	FieldJSONData           = "json_data"
	FieldArquivosJSON       = "arquivos_json"
	FieldDataFinalSubmissao = "data_final_submissao"
	FieldPDFURL             = "pdf_url"
	FieldMensagem           = "mensagem"
	FieldID                 = "id"
)
