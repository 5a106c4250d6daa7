package api

import (
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
)

// RegisterRequest defines the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the response for a successful login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *domain.User `json:"user"`
}

// UpdateUserRequest defines the payload for a partial profile update.
// Omitted fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// UpdateCategoryRequest defines the payload for a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color"       validate:"omitempty,hexcolor"`
}

// CreateTagRequest defines the payload for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name"  validate:"required,max=30"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTagRequest defines the payload for a partial tag update.
type UpdateTagRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=30"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateTaskRequest defines the payload for creating a task. Status and
// Priority default when omitted. TagIDs that do not resolve to the caller's
// own tags are dropped without error.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending in_progress completed archived"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *int64     `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      []int64    `json:"tag_ids"     validate:"omitempty,dive,gt=0"`
}

// UpdateTaskRequest defines the payload for a partial task update. A present
// but empty tag_ids list clears all tag associations; an omitted one leaves
// them unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed archived"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *int64     `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      *[]int64   `json:"tag_ids"     validate:"omitempty,dive,gt=0"`
}

// UpdateTaskStatusRequest defines the payload for a status-only transition.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed archived"`
}

// TaskListResponse is one page of the caller's tasks.
type TaskListResponse struct {
	Items      []*domain.Task `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int64          `json:"total_pages"`
}

// TaskStatisticsResponse summarizes the caller's tasks.
type TaskStatisticsResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	CompletionRate float64          `json:"completion_rate"`
}
