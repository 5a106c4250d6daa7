package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// CategoryService provides CRUD operations over a user's categories.
// Every operation is scoped to the requesting user; reaching another
// user's category yields ErrNotOwned.
type CategoryService interface {
	// CreateCategory creates a category for the user. An empty color gets the
	// default. Returns store.ErrCategoryNameExists when the user already has
	// a category with the same name.
	CreateCategory(ctx context.Context, userID int64, name, description, color string) (*domain.Category, error)

	// GetCategory retrieves one of the user's categories by ID.
	GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error)

	// ListCategories returns all of the user's categories ordered by name.
	ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error)

	// UpdateCategory applies a partial update. A name change is checked for
	// collisions with the user's other categories; keeping the current name
	// is not a conflict.
	UpdateCategory(ctx context.Context, userID, categoryID int64, update store.CategoryUpdate) (*domain.Category, error)

	// DeleteCategory removes the category. Tasks referencing it are kept and
	// detached at the schema level.
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) CategoryService {
	return &CategoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With("component", "category_service"),
	}
}

var _ CategoryService = (*CategoryServiceImpl)(nil)

// CreateCategory creates a category for the user.
func (s *CategoryServiceImpl) CreateCategory(
	ctx context.Context,
	userID int64,
	name, description, color string,
) (*domain.Category, error) {
	category, err := domain.NewCategory(userID, name)
	if err != nil {
		s.logger.Debug("category rejected by validation",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.Description = description
	if color != "" {
		category.Color = color
		if err := category.Validate(); err != nil {
			return nil, fmt.Errorf("failed to create category: %w", err)
		}
	}

	if taken, err := s.categoryStore.NameExists(ctx, userID, name); err != nil {
		s.logger.Error("failed to check category name",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	} else if taken {
		s.logger.Debug("attempted to create duplicate category",
			"user_id", userID,
			"name", name)
		return nil, store.ErrCategoryNameExists
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("category creation lost uniqueness race",
				"user_id", userID,
				"name", name)
		} else {
			s.logger.Error("failed to save category",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created successfully",
		"category_id", category.ID,
		"user_id", userID)
	return category, nil
}

// GetCategory retrieves one of the user's categories by ID.
func (s *CategoryServiceImpl) GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			s.logger.Debug("category not found", "category_id", categoryID)
			return nil, err
		}
		s.logger.Error("failed to retrieve category",
			"error", err,
			"category_id", categoryID)
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}

	if err := verifyOwner(category.UserID, userID); err != nil {
		s.logger.Debug("category access denied",
			"category_id", categoryID,
			"user_id", userID)
		return nil, err
	}

	return category, nil
}

// ListCategories returns all of the user's categories ordered by name.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error) {
	categories, err := s.categoryStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list categories",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update after the ownership check.
func (s *CategoryServiceImpl) UpdateCategory(
	ctx context.Context,
	userID, categoryID int64,
	update store.CategoryUpdate,
) (*domain.Category, error) {
	current, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if update.IsZero() {
		return current, nil
	}

	if update.Color != nil && *update.Color != "" {
		candidate := *current
		candidate.Color = *update.Color
		if err := candidate.Validate(); err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	if update.Name != nil && *update.Name != current.Name {
		candidate := *current
		candidate.Name = *update.Name
		if err := candidate.Validate(); err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
		taken, err := s.categoryStore.NameExists(ctx, userID, *update.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
		if taken {
			s.logger.Debug("category rename collides with existing name",
				"category_id", categoryID,
				"name", *update.Name)
			return nil, store.ErrCategoryNameExists
		}
	}

	updated, err := s.categoryStore.Update(ctx, categoryID, update)
	if err != nil {
		if store.IsDuplicateError(err) {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
		s.logger.Error("failed to update category",
			"error", err,
			"category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("category updated successfully", "category_id", categoryID)
	return updated, nil
}

// DeleteCategory removes the category after the ownership check.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryStore.Delete(ctx, categoryID); err != nil {
		s.logger.Error("failed to delete category",
			"error", err,
			"category_id", categoryID)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted successfully", "category_id", categoryID)
	return nil
}
