package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// MockTagStore implements store.TagStore for testing
type MockTagStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, tag *domain.Tag) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Tag, error)
	GetByIDsFn   func(ctx context.Context, userID int64, ids []int64) ([]*domain.Tag, error)
	ListByUserFn func(ctx context.Context, userID int64) ([]*domain.Tag, error)
	NameExistsFn func(ctx context.Context, userID int64, name string) (bool, error)
	UpdateFn     func(ctx context.Context, id int64, update store.TagUpdate) (*domain.Tag, error)
	DeleteFn     func(ctx context.Context, id int64) error

	// Data for default implementation
	Tags   map[int64]*domain.Tag
	NextID int64
}

// NewMockTagStore creates a new mock store with initialized defaults
func NewMockTagStore() *MockTagStore {
	return &MockTagStore{
		Tags:   make(map[int64]*domain.Tag),
		NextID: 1,
	}
}

var _ store.TagStore = (*MockTagStore)(nil)

// Create implements the TagStore interface
func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tag)
	}

	for _, existing := range m.Tags {
		if existing.UserID == tag.UserID && existing.Name == tag.Name {
			return store.ErrTagNameExists
		}
	}

	tag.ID = m.NextID
	m.NextID++
	m.Tags[tag.ID] = tag
	return nil
}

// GetByID implements the TagStore interface
func (m *MockTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	tag, ok := m.Tags[id]
	if !ok {
		return nil, store.ErrTagNotFound
	}
	return tag, nil
}

// GetByName implements the TagStore interface
func (m *MockTagStore) GetByName(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	for _, tag := range m.Tags {
		if tag.UserID == userID && tag.Name == name {
			return tag, nil
		}
	}
	return nil, store.ErrTagNotFound
}

// GetByIDs implements the TagStore interface. Like the real store, ids that
// do not resolve to the user's own tags are dropped.
func (m *MockTagStore) GetByIDs(ctx context.Context, userID int64, ids []int64) ([]*domain.Tag, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, userID, ids)
	}

	tags := []*domain.Tag{}
	for _, id := range ids {
		tag, ok := m.Tags[id]
		if ok && tag.UserID == userID {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// ListByUser implements the TagStore interface
func (m *MockTagStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	tags := []*domain.Tag{}
	for _, tag := range m.Tags {
		if tag.UserID == userID {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// NameExists implements the TagStore interface
func (m *MockTagStore) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	if m.NameExistsFn != nil {
		return m.NameExistsFn(ctx, userID, name)
	}

	for _, tag := range m.Tags {
		if tag.UserID == userID && tag.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Update implements the TagStore interface
func (m *MockTagStore) Update(ctx context.Context, id int64, update store.TagUpdate) (*domain.Tag, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	tag, ok := m.Tags[id]
	if !ok {
		return nil, store.ErrTagNotFound
	}

	if update.Name != nil {
		tag.Name = *update.Name
	}
	if update.Color != nil {
		tag.Color = *update.Color
	}
	if !update.IsZero() {
		tag.UpdatedAt = time.Now().UTC()
	}
	return tag, nil
}

// Delete implements the TagStore interface
func (m *MockTagStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Tags[id]; !ok {
		return store.ErrTagNotFound
	}
	delete(m.Tags, id)
	return nil
}

// Exists implements the TagStore interface
func (m *MockTagStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.Tags[id]
	return ok, nil
}

// List implements the TagStore interface
func (m *MockTagStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(m.Tags))
	for _, tag := range m.Tags {
		tags = append(tags, tag)
	}
	return tags, nil
}

// Count implements the TagStore interface
func (m *MockTagStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return int64(len(m.Tags)), nil
}

// WithTx implements the TagStore interface
func (m *MockTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return m
}
