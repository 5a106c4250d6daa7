package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// UserProfileUpdate describes a partial profile change. Nil fields are
// left untouched. A set Password is validated and rehashed before storage.
type UserProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// IsZero reports whether no field is set.
func (u UserProfileUpdate) IsZero() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil
}

// UserService provides user profile operations.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateProfile applies a partial profile change. Identifier updates are
	// checked for collisions with other accounts; keeping one's own current
	// username or email is never a conflict. An empty update returns the
	// current profile without writing.
	UpdateProfile(ctx context.Context, userID int64, update UserProfileUpdate) (*domain.User, error)

	// DeactivateUser marks the account inactive, blocking future logins and
	// authenticated requests without destroying the user's data.
	DeactivateUser(ctx context.Context, userID int64) error

	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial profile change.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID int64,
	update UserProfileUpdate,
) (*domain.User, error) {
	if update.IsZero() {
		return s.GetUser(ctx, userID)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		current, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		fields := store.UserUpdate{}

		if update.Email != nil && *update.Email != current.Email {
			candidate := &domain.User{
				ID:             current.ID,
				Username:       current.Username,
				Email:          *update.Email,
				HashedPassword: current.HashedPassword,
			}
			if err := candidate.Validate(); err != nil {
				return err
			}
			taken, err := txStore.EmailExists(ctx, *update.Email)
			if err != nil {
				return fmt.Errorf("failed to check email availability: %w", err)
			}
			if taken {
				return store.ErrEmailExists
			}
			fields.Email = update.Email
		}

		if update.Username != nil && *update.Username != current.Username {
			candidate := &domain.User{
				ID:             current.ID,
				Username:       *update.Username,
				Email:          current.Email,
				HashedPassword: current.HashedPassword,
			}
			if err := candidate.Validate(); err != nil {
				return err
			}
			taken, err := txStore.UsernameExists(ctx, *update.Username)
			if err != nil {
				return fmt.Errorf("failed to check username availability: %w", err)
			}
			if taken {
				return store.ErrUsernameExists
			}
			fields.Username = update.Username
		}

		if update.Password != nil {
			candidate := &domain.User{
				ID:       current.ID,
				Username: current.Username,
				Email:    current.Email,
				Password: *update.Password,
			}
			if err := candidate.Validate(); err != nil {
				return err
			}
			hashed, err := s.hasher.Hash(*update.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fields.HashedPassword = &hashed
		}

		if fields.IsZero() {
			updated = current
			return nil
		}

		updated, err = txStore.Update(ctx, userID, fields)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		var validationErr *domain.ValidationError
		if store.IsDuplicateError(err) || errors.As(err, &validationErr) {
			s.logger.Debug("profile update rejected",
				"error", err,
				"user_id", userID)
		} else {
			s.logger.Error("failed to update profile",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("profile updated successfully", "user_id", userID)
	return updated, nil
}

// DeactivateUser marks the account inactive.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, userID int64) error {
	inactive := false
	_, err := s.userStore.Update(ctx, userID, store.UserUpdate{IsActive: &inactive})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to deactivate non-existent user", "user_id", userID)
		} else {
			s.logger.Error("failed to deactivate user",
				"error", err,
				"user_id", userID)
		}
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("user deactivated", "user_id", userID)
	return nil
}

// DeleteUser removes the account. Owned tasks, categories, and tags
// cascade at the schema level.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				s.logger.Debug("attempted to delete non-existent user", "user_id", userID)
			} else {
				s.logger.Error("failed to delete user",
					"error", err,
					"user_id", userID)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user deleted successfully", "user_id", userID)
		return nil
	})
}
