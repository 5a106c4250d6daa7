package store

import "context"

// EntityStore captures the CRUD primitives every entity store shares. The
// per-entity interfaces embed it and add their uniqueness lookups and
// association maintenance on top.
//
// Implementations return the entity-specific not-found sentinel from
// GetByID and Delete; Exists is a separate cheap probe that never errors
// on absence.
type EntityStore[T any] interface {
	// GetByID retrieves an entity by its unique ID.
	GetByID(ctx context.Context, id int64) (*T, error)

	// List returns a page of entities matching the query. The result is
	// never nil; an empty page is an empty slice.
	List(ctx context.Context, q ListQuery) ([]*T, error)

	// Count returns the number of entities matching the filters, using the
	// same filter semantics as List.
	Count(ctx context.Context, filters ...Filter) (int64, error)

	// Delete removes an entity by ID. Returns the entity's not-found
	// sentinel if no row matched.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether an entity with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
