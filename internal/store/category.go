package store

import (
	"context"
	"database/sql"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
)

// CategoryUpdate carries the fields of a partial category update.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// IsZero reports whether no field is set.
func (u CategoryUpdate) IsZero() bool {
	return u.Name == nil && u.Description == nil && u.Color == nil
}

// CategoryStore defines the interface for category data persistence.
// Category names are unique within the owning user's scope.
type CategoryStore interface {
	EntityStore[domain.Category]

	// Create saves a new category to the store.
	// Returns ErrCategoryNameExists when the (user_id, name) unique index
	// rejects the row.
	Create(ctx context.Context, category *domain.Category) error

	// Update applies the set fields of the partial update and returns the
	// refreshed category. Returns ErrCategoryNotFound if it does not exist.
	Update(ctx context.Context, id int64, update CategoryUpdate) (*domain.Category, error)

	// ListByUser returns all of the user's categories ordered by name.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Category, error)

	// GetByName retrieves the user's category with the given name.
	// Returns ErrCategoryNotFound if there is none.
	GetByName(ctx context.Context, userID int64, name string) (*domain.Category, error)

	// NameExists reports whether the user already has a category with the
	// given name.
	NameExists(ctx context.Context, userID int64, name string) (bool, error)

	// WithTx returns a CategoryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
