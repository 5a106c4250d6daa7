package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// TagService provides CRUD operations over a user's tags. Like categories,
// tag names are unique per user and every operation is owner-scoped.
type TagService interface {
	// CreateTag creates a tag for the user. An empty color gets the default.
	// Returns store.ErrTagNameExists when the user already has a tag with
	// the same name.
	CreateTag(ctx context.Context, userID int64, name, color string) (*domain.Tag, error)

	// GetTag retrieves one of the user's tags by ID.
	GetTag(ctx context.Context, userID, tagID int64) (*domain.Tag, error)

	// ListTags returns all of the user's tags ordered by name.
	ListTags(ctx context.Context, userID int64) ([]*domain.Tag, error)

	// UpdateTag applies a partial update. A name change is checked for
	// collisions with the user's other tags.
	UpdateTag(ctx context.Context, userID, tagID int64, update store.TagUpdate) (*domain.Tag, error)

	// DeleteTag removes the tag and its task associations.
	DeleteTag(ctx context.Context, userID, tagID int64) error
}

// TagServiceImpl implements the TagService interface
type TagServiceImpl struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

// NewTagService creates a new TagService
func NewTagService(tagStore store.TagStore, logger *slog.Logger) TagService {
	return &TagServiceImpl{
		tagStore: tagStore,
		logger:   logger.With("component", "tag_service"),
	}
}

var _ TagService = (*TagServiceImpl)(nil)

// CreateTag creates a tag for the user.
func (s *TagServiceImpl) CreateTag(ctx context.Context, userID int64, name, color string) (*domain.Tag, error) {
	tag, err := domain.NewTag(userID, name)
	if err != nil {
		s.logger.Debug("tag rejected by validation",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	if color != "" {
		tag.Color = color
		if err := tag.Validate(); err != nil {
			return nil, fmt.Errorf("failed to create tag: %w", err)
		}
	}

	if taken, err := s.tagStore.NameExists(ctx, userID, name); err != nil {
		s.logger.Error("failed to check tag name",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create tag: %w", err)
	} else if taken {
		s.logger.Debug("attempted to create duplicate tag",
			"user_id", userID,
			"name", name)
		return nil, store.ErrTagNameExists
	}

	if err := s.tagStore.Create(ctx, tag); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("tag creation lost uniqueness race",
				"user_id", userID,
				"name", name)
		} else {
			s.logger.Error("failed to save tag",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.logger.Info("tag created successfully",
		"tag_id", tag.ID,
		"user_id", userID)
	return tag, nil
}

// GetTag retrieves one of the user's tags by ID.
func (s *TagServiceImpl) GetTag(ctx context.Context, userID, tagID int64) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrTagNotFound) {
			s.logger.Debug("tag not found", "tag_id", tagID)
			return nil, err
		}
		s.logger.Error("failed to retrieve tag",
			"error", err,
			"tag_id", tagID)
		return nil, fmt.Errorf("failed to retrieve tag: %w", err)
	}

	if err := verifyOwner(tag.UserID, userID); err != nil {
		s.logger.Debug("tag access denied",
			"tag_id", tagID,
			"user_id", userID)
		return nil, err
	}

	return tag, nil
}

// ListTags returns all of the user's tags ordered by name.
func (s *TagServiceImpl) ListTags(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	tags, err := s.tagStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tags",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag applies a partial update after the ownership check.
func (s *TagServiceImpl) UpdateTag(
	ctx context.Context,
	userID, tagID int64,
	update store.TagUpdate,
) (*domain.Tag, error) {
	current, err := s.GetTag(ctx, userID, tagID)
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
			return nil, fmt.Errorf("failed to update tag: %w", err)
		}
	}

	if update.Name != nil && *update.Name != current.Name {
		candidate := *current
		candidate.Name = *update.Name
		if err := candidate.Validate(); err != nil {
			return nil, fmt.Errorf("failed to update tag: %w", err)
		}
		taken, err := s.tagStore.NameExists(ctx, userID, *update.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to update tag: %w", err)
		}
		if taken {
			s.logger.Debug("tag rename collides with existing name",
				"tag_id", tagID,
				"name", *update.Name)
			return nil, store.ErrTagNameExists
		}
	}

	updated, err := s.tagStore.Update(ctx, tagID, update)
	if err != nil {
		s.logger.Error("failed to update tag",
			"error", err,
			"tag_id", tagID)
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	s.logger.Info("tag updated successfully", "tag_id", tagID)
	return updated, nil
}

// DeleteTag removes the tag after the ownership check. Association rows in
// the task join table cascade at the schema level.
func (s *TagServiceImpl) DeleteTag(ctx context.Context, userID, tagID int64) error {
	if _, err := s.GetTag(ctx, userID, tagID); err != nil {
		return err
	}

	if err := s.tagStore.Delete(ctx, tagID); err != nil {
		s.logger.Error("failed to delete tag",
			"error", err,
			"tag_id", tagID)
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.logger.Info("tag deleted successfully", "tag_id", tagID)
	return nil
}
