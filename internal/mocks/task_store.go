package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. It resolves
// relations through the optional CategoryLookup and TagLookup maps so
// service tests can verify preloading without a database.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Task, error)
	GetWithRelationsFn func(ctx context.Context, id int64) (*domain.Task, error)
	ListByUserFn       func(ctx context.Context, userID int64, filter store.TaskFilter, offset, limit int) ([]*domain.Task, error)
	CountByUserFn      func(ctx context.Context, userID int64, filter store.TaskFilter) (int64, error)
	CountByStatusFn    func(ctx context.Context, userID int64) (map[domain.TaskStatus]int64, error)
	ReplaceTagsFn      func(ctx context.Context, taskID int64, tagIDs []int64) error
	UpdateFn           func(ctx context.Context, id int64, update store.TaskUpdate) (*domain.Task, error)
	DeleteFn           func(ctx context.Context, id int64) error

	// Data for default implementation
	Tasks          map[int64]*domain.Task
	TagIDsByTask   map[int64][]int64
	CategoryLookup map[int64]*domain.Category
	TagLookup      map[int64]*domain.Tag
	NextID         int64
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:          make(map[int64]*domain.Task),
		TagIDsByTask:   make(map[int64][]int64),
		CategoryLookup: make(map[int64]*domain.Category),
		TagLookup:      make(map[int64]*domain.Tag),
		NextID:         1,
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	task.ID = m.NextID
	m.NextID++
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// GetWithRelations implements the TaskStore interface
func (m *MockTaskStore) GetWithRelations(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetWithRelationsFn != nil {
		return m.GetWithRelationsFn(ctx, id)
	}

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	m.attachRelations(task)
	return task, nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID int64,
	filter store.TaskFilter,
	offset, limit int,
) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, filter, offset, limit)
	}

	tasks := m.userTasks(userID, filter)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })

	if offset >= len(tasks) {
		return []*domain.Task{}, nil
	}
	tasks = tasks[offset:]
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}
	for _, task := range tasks {
		m.attachRelations(task)
	}
	return tasks, nil
}

// CountByUser implements the TaskStore interface
func (m *MockTaskStore) CountByUser(ctx context.Context, userID int64, filter store.TaskFilter) (int64, error) {
	if m.CountByUserFn != nil {
		return m.CountByUserFn(ctx, userID, filter)
	}
	return int64(len(m.userTasks(userID, filter))), nil
}

// CountByStatus implements the TaskStore interface
func (m *MockTaskStore) CountByStatus(ctx context.Context, userID int64) (map[domain.TaskStatus]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, userID)
	}

	counts := make(map[domain.TaskStatus]int64)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			counts[task.Status]++
		}
	}
	return counts, nil
}

// ReplaceTags implements the TaskStore interface
func (m *MockTaskStore) ReplaceTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	if m.ReplaceTagsFn != nil {
		return m.ReplaceTagsFn(ctx, taskID, tagIDs)
	}

	m.TagIDsByTask[taskID] = append([]int64(nil), tagIDs...)
	return nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, id int64, update store.TaskUpdate) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.CategoryID != nil {
		task.CategoryID = update.CategoryID
	}
	if !update.IsZero() {
		task.UpdatedAt = time.Now().UTC()
	}
	return task, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	delete(m.TagIDsByTask, id)
	return nil
}

// Exists implements the TaskStore interface
func (m *MockTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.Tasks[id]
	return ok, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Count implements the TaskStore interface
func (m *MockTaskStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return int64(len(m.Tasks)), nil
}

// WithTx implements the TaskStore interface
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func (m *MockTaskStore) userTasks(userID int64, filter store.TaskFilter) []*domain.Task {
	tasks := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil &&
			(task.CategoryID == nil || *task.CategoryID != *filter.CategoryID) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func (m *MockTaskStore) attachRelations(task *domain.Task) {
	task.Tags = []domain.Tag{}
	for _, tagID := range m.TagIDsByTask[task.ID] {
		if tag, ok := m.TagLookup[tagID]; ok {
			task.Tags = append(task.Tags, *tag)
		}
	}
	sort.Slice(task.Tags, func(i, j int) bool { return task.Tags[i].Name < task.Tags[j].Name })
	if task.CategoryID != nil {
		task.Category = m.CategoryLookup[*task.CategoryID]
	}
}
