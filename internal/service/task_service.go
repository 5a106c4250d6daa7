package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

const (
	// DefaultPageSize is used when a list request does not name one.
	DefaultPageSize = 20

	// MaxPageSize caps how many tasks a single page may carry.
	MaxPageSize = 100
)

// TaskCreate describes a new task. Status and Priority fall back to
// their defaults when empty. Tag ids that do not resolve to tags owned
// by the requesting user are dropped without error.
type TaskCreate struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	CategoryID  *int64
	TagIDs      []int64
}

// TaskPatch describes a partial task change. Nil fields are left
// untouched. TagIDs distinguishes an omitted tag list (nil) from an
// explicitly empty one, which clears all tag associations.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	CategoryID  *int64
	TagIDs      *[]int64
}

// IsZero reports whether no field is set.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && p.CategoryID == nil &&
		p.TagIDs == nil
}

// TaskPage is one page of a user's task list.
type TaskPage struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	PageSize   int
	TotalPages int64
}

// TaskStatistics summarizes a user's tasks. ByStatus carries an entry
// for every status, including zero counts. CompletionRate is the
// percentage of completed tasks rounded to two decimals, 0 when the
// user has no tasks.
type TaskStatistics struct {
	Total          int64
	ByStatus       map[domain.TaskStatus]int64
	CompletionRate float64
}

// TaskService provides CRUD, listing, and summary operations over a
// user's tasks. Every operation is owner-scoped.
type TaskService interface {
	// CreateTask creates a task with its category and tag associations.
	CreateTask(ctx context.Context, userID int64, input TaskCreate) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks with category and tags.
	GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// ListTasks returns a page of the user's tasks, newest first,
	// optionally narrowed by status and category.
	ListTasks(ctx context.Context, userID int64, filter store.TaskFilter, page, pageSize int) (*TaskPage, error)

	// UpdateTask applies a partial update including tag reassignment.
	UpdateTask(ctx context.Context, userID, taskID int64, patch TaskPatch) (*domain.Task, error)

	// ChangeStatus moves the task to the given status.
	ChangeStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask removes the task and its tag associations.
	DeleteTask(ctx context.Context, userID, taskID int64) error

	// Statistics summarizes the user's tasks by status.
	Statistics(ctx context.Context, userID int64) (*TaskStatistics, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	tagStore      store.TagStore
	db            *sql.DB
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	categoryStore store.CategoryStore,
	tagStore store.TagStore,
	db *sql.DB,
	logger *slog.Logger,
) TaskService {
	return &TaskServiceImpl{
		taskStore:     taskStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		db:            db,
		logger:        logger.With("component", "task_service"),
	}
}

var _ TaskService = (*TaskServiceImpl)(nil)

// CreateTask creates a task with its category and tag associations.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID int64, input TaskCreate) (*domain.Task, error) {
	task, err := domain.NewTask(userID, input.Title)
	if err != nil {
		s.logger.Debug("task rejected by validation",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.Description = input.Description
	task.DueDate = input.DueDate
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if input.CategoryID != nil {
		if err := s.verifyCategory(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = input.CategoryID
	}

	tagIDs, err := s.resolveTagIDs(ctx, userID, input.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		if err := txTasks.Create(ctx, task); err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			return txTasks.ReplaceTags(ctx, task.ID, tagIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save task",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskStore.GetWithRelations(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created task: %w", err)
	}

	s.logger.Info("task created successfully",
		"task_id", created.ID,
		"user_id", userID,
		"tag_count", len(tagIDs))
	return created, nil
}

// GetTask retrieves one of the user's tasks with category and tags.
func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.taskStore.GetWithRelations(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found", "task_id", taskID)
			return nil, err
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	if err := verifyOwner(task.UserID, userID); err != nil {
		s.logger.Debug("task access denied",
			"task_id", taskID,
			"user_id", userID)
		return nil, err
	}

	return task, nil
}

// ListTasks returns a page of the user's tasks, newest first.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	userID int64,
	filter store.TaskFilter,
	page, pageSize int,
) (*TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total, err := s.taskStore.CountByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to count tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	offset := (page - 1) * pageSize
	tasks, err := s.taskStore.ListByUser(ctx, userID, filter, offset, pageSize)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{
		Items:      tasks,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}, nil
}

// UpdateTask applies a partial update including tag reassignment.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID int64,
	patch TaskPatch,
) (*domain.Task, error) {
	current, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.IsZero() {
		return current, nil
	}

	if err := validatePatch(patch); err != nil {
		s.logger.Debug("task patch rejected by validation",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if patch.CategoryID != nil {
		if err := s.verifyCategory(ctx, userID, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	var tagIDs []int64
	if patch.TagIDs != nil {
		tagIDs, err = s.resolveTagIDs(ctx, userID, *patch.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	fields := store.TaskUpdate{
		Title:       patch.Title,
		Description: patch.Description,
		Status:      patch.Status,
		Priority:    patch.Priority,
		DueDate:     patch.DueDate,
		CategoryID:  patch.CategoryID,
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		if _, err := txTasks.Update(ctx, taskID, fields); err != nil {
			return err
		}
		if patch.TagIDs != nil {
			return txTasks.ReplaceTags(ctx, taskID, tagIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskStore.GetWithRelations(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated task: %w", err)
	}

	s.logger.Info("task updated successfully", "task_id", taskID)
	return updated, nil
}

// ChangeStatus moves the task to the given status.
func (s *TaskServiceImpl) ChangeStatus(
	ctx context.Context,
	userID, taskID int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("failed to change task status: %w",
			domain.NewValidationError("status", "is not a valid task status", domain.ErrInvalidStatus))
	}
	return s.UpdateTask(ctx, userID, taskID, TaskPatch{Status: &status})
}

// DeleteTask removes the task after the ownership check.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if _, err := s.GetTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted successfully", "task_id", taskID)
	return nil
}

// Statistics summarizes the user's tasks by status.
func (s *TaskServiceImpl) Statistics(ctx context.Context, userID int64) (*TaskStatistics, error) {
	counts, err := s.taskStore.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Error("failed to compute task statistics",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	byStatus := make(map[domain.TaskStatus]int64, len(domain.TaskStatuses()))
	var total int64
	for _, status := range domain.TaskStatuses() {
		byStatus[status] = counts[status]
		total += counts[status]
	}

	var completionRate float64
	if total > 0 {
		completionRate = float64(byStatus[domain.TaskStatusCompleted]) / float64(total) * 100
		completionRate = math.Round(completionRate*100) / 100
	}

	return &TaskStatistics{
		Total:          total,
		ByStatus:       byStatus,
		CompletionRate: completionRate,
	}, nil
}

// verifyCategory checks that the category exists and belongs to the user.
func (s *TaskServiceImpl) verifyCategory(ctx context.Context, userID, categoryID int64) error {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			s.logger.Debug("task references unknown category", "category_id", categoryID)
			return err
		}
		return fmt.Errorf("failed to verify category: %w", err)
	}
	if err := verifyOwner(category.UserID, userID); err != nil {
		s.logger.Debug("task references another user's category",
			"category_id", categoryID,
			"user_id", userID)
		return err
	}
	return nil
}

// resolveTagIDs filters the requested tag ids down to tags the user owns.
// Unknown ids and other users' tags are silently dropped.
func (s *TaskServiceImpl) resolveTagIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tags, err := s.tagStore.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	resolved := make([]int64, len(tags))
	for i, tag := range tags {
		resolved[i] = tag.ID
	}
	if len(resolved) < len(ids) {
		s.logger.Debug("dropped unresolvable tag ids",
			"user_id", userID,
			"requested", len(ids),
			"resolved", len(resolved))
	}
	return resolved, nil
}

// validatePatch checks the enum fields of a partial update.
func validatePatch(patch TaskPatch) error {
	if patch.Title != nil {
		if *patch.Title == "" {
			return domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
		}
		if len(*patch.Title) > 200 {
			return domain.NewValidationError("title", "must be at most 200 characters", domain.ErrValidation)
		}
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.NewValidationError("status", "is not a valid task status", domain.ErrInvalidStatus)
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return domain.NewValidationError("priority", "is not a valid task priority", domain.ErrInvalidPriority)
	}
	return nil
}
