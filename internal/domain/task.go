package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

// TaskStatuses returns every recognized status in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusArchived,
	}
}

// IsValid reports whether the status is one of the recognized values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether the priority is one of the recognized values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is the central entity of the system. A task belongs to exactly one
// user, optionally references one of that user's categories, and carries a
// set of that user's tags via the task_tags association.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	UserID      int64        `json:"user_id"`
	CategoryID  *int64       `json:"category_id,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	Tags        []Tag        `json:"tags,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a Task owned by userID with defaulted status and priority.
func NewTask(userID int64, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:     title,
		Status:    TaskStatusPending,
		Priority:  TaskPriorityMedium,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the Task carries valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	if len(t.Title) > 200 {
		return NewValidationError("title", "must be at most 200 characters", ErrValidation)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a recognized status", ErrInvalidStatus)
	}
	if !t.Priority.IsValid() {
		return NewValidationError("priority", "is not a recognized priority", ErrInvalidPriority)
	}
	if t.UserID <= 0 {
		return NewValidationError("user_id", "must be set", ErrInvalidID)
	}
	return nil
}
