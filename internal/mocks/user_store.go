package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	EmailExistsFn    func(ctx context.Context, email string) (bool, error)
	UsernameExistsFn func(ctx context.Context, username string) (bool, error)
	UpdateFn         func(ctx context.Context, id int64, update store.UserUpdate) (*domain.User, error)
	DeleteFn         func(ctx context.Context, id int64) error

	// Data for default implementation
	Users  map[int64]*domain.User
	NextID int64
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[int64]*domain.User),
		NextID: 1,
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	user.ID = m.NextID
	m.NextID++
	m.Users[user.ID] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// EmailExists implements the UserStore interface
func (m *MockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// UsernameExists implements the UserStore interface
func (m *MockUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFn != nil {
		return m.UsernameExistsFn(ctx, username)
	}

	for _, user := range m.Users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, id int64, update store.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.HashedPassword != nil {
		user.HashedPassword = *update.HashedPassword
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if !update.IsZero() {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

// Exists implements the UserStore interface
func (m *MockUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.Users[id]
	return ok, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context, q store.ListQuery) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// Count implements the UserStore interface
func (m *MockUserStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return int64(len(m.Users)), nil
}

// WithTx implements the UserStore interface. The mock has no transaction
// semantics, so the same instance is returned.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
