// Copyright (c) 2026 Atimus. All rights reserved.

package editais

import "context"

// # Persistence Contracts

// Store is the persistence boundary of the editais catalog.
type Store interface {
	// List returns every edital, newest first.
	List(ctx context.Context) ([]*Edital, error)

	// FindByID returns the edital with the given ID, or a not-found error.
	FindByID(ctx context.Context, id string) (*Edital, error)

	// Create inserts a new edital.
	Create(ctx context.Context, edital *Edital) error

	// Update replaces the mutable fields of an existing edital. Returns a
	// not-found error when the ID does not exist.
	Update(ctx context.Context, edital *Edital) error

	// Delete removes an edital. Returns a not-found error when the ID does
	// not exist.
	Delete(ctx context.Context, id string) error

	// SearchByTerms returns up to limit editais whose title or structured
	// content matches ANY of the given terms, newest first.
	SearchByTerms(ctx context.Context, terms []string, limit int) ([]*Edital, error)
}
