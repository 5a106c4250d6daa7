package store

import (
	"context"
	"database/sql"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
)

// UserUpdate carries the fields of a partial user update. Nil pointers
// leave the stored value untouched.
type UserUpdate struct {
	Username       *string
	Email          *string
	HashedPassword *string
	IsActive       *bool
}

// IsZero reports whether no field is set, i.e. the update is a no-op.
func (u UserUpdate) IsZero() bool {
	return u.Username == nil && u.Email == nil && u.HashedPassword == nil && u.IsActive == nil
}

// UserStore defines the interface for user data persistence.
// Username and email are unique system-wide.
type UserStore interface {
	EntityStore[domain.User]

	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext is never persisted.
	// Returns ErrEmailExists or ErrUsernameExists when the backend's unique
	// indexes reject the row.
	Create(ctx context.Context, user *domain.User) error

	// Update applies the set fields of the partial update and returns the
	// refreshed user. Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id int64, update UserUpdate) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no user has that username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// EmailExists reports whether any user has the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UsernameExists reports whether any user has the given username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// WithTx returns a UserStore bound to the provided transaction, so
	// multiple operations can share a single unit of work.
	WithTx(tx *sql.Tx) UserStore
}
