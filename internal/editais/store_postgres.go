// Copyright (c) 2026 Atimus. All rights reserved.

package editais

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

// # Editais Repository

const editalColumns = `
	id, titulo, slug, json_data, arquivos_json,
	datafinalsubmissao, pdfurl, createdat`

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
List retrieves every edital, newest first.

Parameters:
  - context: context.Context

Returns:
  - []*Edital: Hydrated entities
  - error: Database errors
*/
func (store *PostgresStore) List(context context.Context) ([]*Edital, error) {
	query := `SELECT ` + editalColumns + ` FROM catalog.edital ORDER BY createdat DESC`

	rows, err := store.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_edital_store_list_failed: %w", err)
	}
	defer rows.Close()

	return scanEditais(rows)
}

/*
FindByID retrieves a single edital by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edital: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByID(context context.Context, id string) (*Edital, error) {
	query := `SELECT ` + editalColumns + ` FROM catalog.edital WHERE id = $1`

	edital := &Edital{}
	err := store.pool.QueryRow(context, query, id).Scan(
		&edital.ID,
		&edital.Titulo,
		&edital.Slug,
		&edital.JSONData,
		&edital.ArquivosJSON,
		&edital.DataFinalSubmissao,
		&edital.PDFURL,
		&edital.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Edital")
		}
		return nil, fmt.Errorf("postgres_edital_store_find_failed: %w", err)
	}

	return edital, nil
}

/*
Create inserts a new edital record.

Parameters:
  - context: context.Context
  - edital: *Edital (Entity to persist)

Returns:
  - error: Database errors
*/
func (store *PostgresStore) Create(context context.Context, edital *Edital) error {
	const query = `
		INSERT INTO catalog.edital (
			id, titulo, slug, json_data, arquivos_json,
			datafinalsubmissao, pdfurl, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if edital.CreatedAt.IsZero() {
		edital.CreatedAt = time.Now().UTC()
	}

	_, err := store.pool.Exec(context, query,
		edital.ID,
		edital.Titulo,
		edital.Slug,
		edital.JSONData,
		edital.ArquivosJSON,
		edital.DataFinalSubmissao,
		edital.PDFURL,
		edital.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_edital_store_create_failed: %w", err)
	}

	return nil
}

/*
Update replaces the mutable fields of an existing edital.

Description: The slug is immutable after creation so previously shared links
never break.

Parameters:
  - context: context.Context
  - edital: *Edital

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Update(context context.Context, edital *Edital) error {
	const query = `
		UPDATE catalog.edital
		SET titulo = $2, json_data = $3, arquivos_json = $4,
		    datafinalsubmissao = $5, pdfurl = $6
		WHERE id = $1`

	tag, err := store.pool.Exec(context, query,
		edital.ID,
		edital.Titulo,
		edital.JSONData,
		edital.ArquivosJSON,
		edital.DataFinalSubmissao,
		edital.PDFURL,
	)
	if err != nil {
		return fmt.Errorf("postgres_edital_store_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Edital")
	}

	return nil
}

/*
Delete removes an edital record.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Delete(context context.Context, id string) error {
	const query = `DELETE FROM catalog.edital WHERE id = $1`

	tag, err := store.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_edital_store_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Edital")
	}

	return nil
}

/*
SearchByTerms finds editais matching ANY of the given terms.

Description: Each term becomes a case-insensitive substring match against
the title and the structured content cast to text. Terms are OR-combined;
ranking is recency, not relevance.

Parameters:
  - context: context.Context
  - terms: []string (Already tokenized by the service layer)
  - limit: int

Returns:
  - []*Edital: Matching entities, newest first
  - error: Database errors
*/
func (store *PostgresStore) SearchByTerms(context context.Context, terms []string, limit int) ([]*Edital, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(terms))
	arguments := make([]any, 0, len(terms)+1)
	for index, term := range terms {
		placeholder := fmt.Sprintf("$%d", index+1)
		conditions = append(conditions,
			fmt.Sprintf("(titulo ILIKE %s OR json_data::text ILIKE %s)", placeholder, placeholder))
		arguments = append(arguments, "%"+term+"%")
	}
	arguments = append(arguments, limit)

	query := `SELECT ` + editalColumns + `
		FROM catalog.edital
		WHERE ` + strings.Join(conditions, " OR ") + `
		ORDER BY createdat DESC
		LIMIT $` + fmt.Sprint(len(terms)+1)

	rows, err := store.pool.Query(context, query, arguments...)
	if err != nil {
		return nil, fmt.Errorf("postgres_edital_store_search_failed: %w", err)
	}
	defer rows.Close()

	return scanEditais(rows)
}

// # Internal Helpers

// scanEditais hydrates all rows of a multi-row edital query.
func scanEditais(rows pgx.Rows) ([]*Edital, error) {
	editais := make([]*Edital, 0)
	for rows.Next() {
		edital := &Edital{}
		err := rows.Scan(
			&edital.ID,
			&edital.Titulo,
			&edital.Slug,
			&edital.JSONData,
			&edital.ArquivosJSON,
			&edital.DataFinalSubmissao,
			&edital.PDFURL,
			&edital.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_edital_store_scan_failed: %w", err)
		}
		editais = append(editais, edital)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_edital_store_rows_failed: %w", err)
	}

	return editais, nil
}
