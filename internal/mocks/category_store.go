package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, category *domain.Category) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Category, error)
	ListByUserFn func(ctx context.Context, userID int64) ([]*domain.Category, error)
	NameExistsFn func(ctx context.Context, userID int64, name string) (bool, error)
	UpdateFn     func(ctx context.Context, id int64, update store.CategoryUpdate) (*domain.Category, error)
	DeleteFn     func(ctx context.Context, id int64) error

	// Data for default implementation
	Categories map[int64]*domain.Category
	NextID     int64
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}

	category.ID = m.NextID
	m.NextID++
	m.Categories[category.ID] = category
	return nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	category, ok := m.Categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// GetByName implements the CategoryStore interface
func (m *MockCategoryStore) GetByName(ctx context.Context, userID int64, name string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == name {
			return category, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

// ListByUser implements the CategoryStore interface
func (m *MockCategoryStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Category, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	categories := []*domain.Category{}
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// NameExists implements the CategoryStore interface
func (m *MockCategoryStore) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	if m.NameExistsFn != nil {
		return m.NameExistsFn(ctx, userID, name)
	}

	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Update implements the CategoryStore interface
func (m *MockCategoryStore) Update(ctx context.Context, id int64, update store.CategoryUpdate) (*domain.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	category, ok := m.Categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}

	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}
	if update.Color != nil {
		category.Color = *update.Color
	}
	if !update.IsZero() {
		category.UpdatedAt = time.Now().UTC()
	}
	return category, nil
}

// Delete implements the CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// Exists implements the CategoryStore interface
func (m *MockCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.Categories[id]
	return ok, nil
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	return categories, nil
}

// Count implements the CategoryStore interface
func (m *MockCategoryStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return int64(len(m.Categories)), nil
}

// WithTx implements the CategoryStore interface
func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return m
}
