package domain

import (
	"strings"
	"time"
)

// DefaultTagColor is the display color assigned when none is given.
const DefaultTagColor = "#10B981"

// Tag labels a user's tasks. Tags relate to tasks many-to-many via the
// task_tags association and, like categories, are unique by name within
// the owning user's scope.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a Tag owned by userID.
func NewTag(userID int64, name string) (*Tag, error) {
	now := time.Now().UTC()
	tag := &Tag{
		Name:      name,
		Color:     DefaultTagColor,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks that the Tag carries valid data.
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "cannot be empty", ErrValidation)
	}
	if len(t.Name) > 30 {
		return NewValidationError("name", "must be at most 30 characters", ErrValidation)
	}
	if t.Color != "" && !validHexColor(t.Color) {
		return NewValidationError("color", "must be a hex color like #10B981", ErrValidation)
	}
	if t.UserID <= 0 {
		return NewValidationError("user_id", "must be set", ErrInvalidID)
	}
	return nil
}
