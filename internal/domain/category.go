package domain

import (
	"strings"
	"time"
)

// DefaultCategoryColor is the display color assigned when none is given.
const DefaultCategoryColor = "#3B82F6"

// Category groups a user's tasks. Category names are unique within the
// owning user's scope, not globally.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory creates a Category owned by userID.
func NewCategory(userID int64, name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		Name:      name,
		Color:     DefaultCategoryColor,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks that the Category carries valid data.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrValidation)
	}
	if len(c.Name) > 50 {
		return NewValidationError("name", "must be at most 50 characters", ErrValidation)
	}
	if c.Color != "" && !validHexColor(c.Color) {
		return NewValidationError("color", "must be a hex color like #3B82F6", ErrValidation)
	}
	if c.UserID <= 0 {
		return NewValidationError("user_id", "must be set", ErrInvalidID)
	}
	return nil
}

// validHexColor matches the 7-character #RRGGBB form used for display colors.
func validHexColor(color string) bool {
	if len(color) != 7 || color[0] != '#' {
		return false
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
