package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/platform/logger"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// Unique constraint names from the users table, used to tell apart which
// uniqueness rule a failed insert or update violated.
const (
	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
)

const userColumns = "id, username, email, hashed_password, is_active, created_at, updated_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create implements store.UserStore.Create
// The user must carry a hashed password; the plaintext field is ignored.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return err
	}
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "hashed password missing", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO users (username, email, hashed_password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("unique violation during user creation",
				slog.String("error", err.Error()),
				slog.String("email", user.Email))
			if mapped := MapUniqueViolation(err, usersEmailConstraint, store.ErrEmailExists); errors.Is(mapped, store.ErrEmailExists) {
				return mapped
			}
			return MapUniqueViolation(err, usersUsernameConstraint, store.ErrUsernameExists)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("email", user.Email))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by username",
				slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}

	return user, nil
}

// EmailExists implements store.UserStore.EmailExists
func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// UsernameExists implements store.UserStore.UsernameExists
func (s *PostgresUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// Update implements store.UserStore.Update
// Only the set fields of the partial update are written; updated_at is
// bumped on every successful write. Returns the refreshed user.
func (s *PostgresUserStore) Update(ctx context.Context, id int64, update store.UserUpdate) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsZero() {
		return s.GetByID(ctx, id)
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Username != nil {
		add("username", *update.Username)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.HashedPassword != nil {
		add("hashed_password", *update.HashedPassword)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		joinSet(set), len(args),
	)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		if IsUniqueViolation(err) {
			log.Warn("unique violation during user update",
				slog.String("error", err.Error()),
				slog.Int64("user_id", id))
			if mapped := MapUniqueViolation(err, usersEmailConstraint, store.ErrEmailExists); errors.Is(mapped, store.ErrEmailExists) {
				return nil, mapped
			}
			return nil, MapUniqueViolation(err, usersUsernameConstraint, store.ErrUsernameExists)
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", id))
	return user, nil
}

// Delete implements store.UserStore.Delete
// Owned tasks, categories, and tags cascade at the schema level.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for delete", slog.Int64("user_id", id))
		return err
	}

	log.Info("user deleted successfully", slog.Int64("user_id", id))
	return nil
}

// Exists implements store.UserStore.Exists
func (s *PostgresUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context, q store.ListQuery) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clauses, args := buildListClauses(q)
	query := `SELECT ` + userColumns + ` FROM users` + clauses

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// Count implements store.UserStore.Count
func (s *PostgresUserStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	where, args := buildWhere(filters, 0)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}
