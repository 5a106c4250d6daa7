package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	category, err := NewCategory(3, "Work")
	require.NoError(t, err)

	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, DefaultCategoryColor, category.Color)
	assert.Equal(t, int64(3), category.UserID)
	assert.False(t, category.CreatedAt.IsZero())
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  error
	}{
		{
			name:     "valid category",
			category: Category{Name: "Work", Color: "#AABB01", UserID: 1},
			wantErr:  nil,
		},
		{
			name:     "empty color is allowed",
			category: Category{Name: "Work", UserID: 1},
			wantErr:  nil,
		},
		{
			name:     "empty name",
			category: Category{Name: "", Color: DefaultCategoryColor, UserID: 1},
			wantErr:  ErrValidation,
		},
		{
			name:     "name too long",
			category: Category{Name: strings.Repeat("c", 51), Color: DefaultCategoryColor, UserID: 1},
			wantErr:  ErrValidation,
		},
		{
			name:     "color without hash prefix",
			category: Category{Name: "Work", Color: "3B82F6", UserID: 1},
			wantErr:  ErrValidation,
		},
		{
			name:     "color too short",
			category: Category{Name: "Work", Color: "#FFF", UserID: 1},
			wantErr:  ErrValidation,
		},
		{
			name:     "color with non-hex digit",
			category: Category{Name: "Work", Color: "#3B82G6", UserID: 1},
			wantErr:  ErrValidation,
		},
		{
			name:     "missing owner",
			category: Category{Name: "Work", Color: DefaultCategoryColor},
			wantErr:  ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
