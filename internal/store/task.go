package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
)

// TaskFilter narrows task listings and counts. Nil fields match everything.
type TaskFilter struct {
	Status     *domain.TaskStatus
	CategoryID *int64
}

// TaskUpdate carries the fields of a partial task update. Nil pointers
// leave the stored value untouched. The tag set is not part of the row
// update; it is replaced separately via ReplaceTags.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	CategoryID  *int64
}

// IsZero reports whether no field is set.
func (u TaskUpdate) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.DueDate == nil && u.CategoryID == nil
}

// TaskStore defines the interface for task data persistence, including the
// task_tags association maintenance and the aggregate queries used for
// statistics.
type TaskStore interface {
	EntityStore[domain.Task]

	// Create saves a new task to the store and populates its generated ID.
	// The task's tag set is attached separately via ReplaceTags.
	// Returns ErrInvalidEntity when a foreign key (user, category) does not
	// resolve.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies the set fields of the partial update and returns the
	// refreshed task without relations. Returns ErrTaskNotFound if the task
	// does not exist.
	Update(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)

	// GetWithRelations retrieves a task with its category and tags
	// preloaded. Returns ErrTaskNotFound if the task does not exist.
	GetWithRelations(ctx context.Context, id int64) (*domain.Task, error)

	// ListByUser returns a page of the user's tasks, newest first, with
	// category and tags preloaded.
	ListByUser(ctx context.Context, userID int64, filter TaskFilter, offset, limit int) ([]*domain.Task, error)

	// CountByUser counts the user's tasks under the same filter semantics
	// as ListByUser.
	CountByUser(ctx context.Context, userID int64, filter TaskFilter) (int64, error)

	// CountByStatus returns the user's task counts grouped by status.
	// Statuses with no tasks are absent from the map.
	CountByStatus(ctx context.Context, userID int64) (map[domain.TaskStatus]int64, error)

	// ReplaceTags replaces the task's association rows with the given tag
	// id set. An empty set clears all associations. The caller is
	// responsible for restricting tagIDs to tags the task's owner holds.
	ReplaceTags(ctx context.Context, taskID int64, tagIDs []int64) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
