package store

import (
	"context"
	"database/sql"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
)

// TagUpdate carries the fields of a partial tag update.
type TagUpdate struct {
	Name  *string
	Color *string
}

// IsZero reports whether no field is set.
func (u TagUpdate) IsZero() bool {
	return u.Name == nil && u.Color == nil
}

// TagStore defines the interface for tag data persistence.
// Tag names are unique within the owning user's scope.
type TagStore interface {
	EntityStore[domain.Tag]

	// Create saves a new tag to the store.
	// Returns ErrTagNameExists when the (user_id, name) unique index
	// rejects the row.
	Create(ctx context.Context, tag *domain.Tag) error

	// Update applies the set fields of the partial update and returns the
	// refreshed tag. Returns ErrTagNotFound if it does not exist.
	Update(ctx context.Context, id int64, update TagUpdate) (*domain.Tag, error)

	// ListByUser returns all of the user's tags ordered by name.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error)

	// GetByName retrieves the user's tag with the given name.
	// Returns ErrTagNotFound if there is none.
	GetByName(ctx context.Context, userID int64, name string) (*domain.Tag, error)

	// NameExists reports whether the user already has a tag with the given name.
	NameExists(ctx context.Context, userID int64, name string) (bool, error)

	// GetByIDs returns the subset of the given tags that exist AND belong to
	// userID, in name order. IDs that are unknown or owned by another user
	// are omitted from the result, not reported as errors.
	GetByIDs(ctx context.Context, userID int64, ids []int64) ([]*domain.Tag, error)

	// WithTx returns a TagStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TagStore
}
