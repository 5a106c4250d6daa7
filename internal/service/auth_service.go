package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// AuthService handles account registration and credential-based login.
type AuthService interface {
	// Register creates a new account from the given credentials. The plaintext
	// password is validated, hashed, and discarded; only the hash is stored.
	// Returns store.ErrEmailExists or store.ErrUsernameExists when the
	// identifier is already taken.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login verifies the credentials and issues a signed access token.
	// Unknown email, wrong password, and deactivated accounts all surface as
	// ErrInvalidCredentials or ErrAccountInactive.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	db         *sql.DB
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	db *sql.DB,
	logger *slog.Logger,
) AuthService {
	return &AuthServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		db:         db,
		logger:     logger.With("component", "auth_service"),
	}
}

var _ AuthService = (*AuthServiceImpl)(nil)

// Register creates a new account from the given credentials.
// Both identifiers are checked up front so callers learn which one collides
// before the cost of hashing; the unique indexes still back the checks
// against concurrent registrations.
func (s *AuthServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		s.logger.Debug("registration rejected by validation",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if taken, err := s.userStore.EmailExists(ctx, email); err != nil {
		s.logger.Error("failed to check email availability",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	} else if taken {
		s.logger.Debug("attempted registration with existing email", "email", email)
		return nil, store.ErrEmailExists
	}

	if taken, err := s.userStore.UsernameExists(ctx, username); err != nil {
		s.logger.Error("failed to check username availability",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	} else if taken {
		s.logger.Debug("attempted registration with existing username", "username", username)
		return nil, store.ErrUsernameExists
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			// Lost the race against a concurrent registration.
			s.logger.Debug("registration lost uniqueness race", "email", email)
		} else {
			s.logger.Error("failed to save user", "error", err, "email", email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Login verifies the credentials and issues a signed access token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Debug("login attempt for inactive account", "user_id", user.ID)
		return nil, ErrAccountInactive
	}

	token, expiresAt, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info("user logged in successfully", "user_id", user.ID)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
