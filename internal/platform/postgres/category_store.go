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

// categoryNameConstraint is the (user_id, name) unique constraint on categories.
const categoryNameConstraint = "uk_user_category"

const categoryColumns = "id, name, description, color, user_id, created_at, updated_at"

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

func scanCategory(row interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Color,
		&category.UserID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO categories (name, description, color, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		category.Name,
		category.Description,
		category.Color,
		category.UserID,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate category name",
				slog.String("name", category.Name),
				slog.Int64("user_id", category.UserID))
			return MapUniqueViolation(err, categoryNameConstraint, store.ErrCategoryNameExists)
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", category.UserID))
		return MapError(err)
	}

	log.Info("category created successfully",
		slog.Int64("category_id", category.ID),
		slog.Int64("user_id", category.UserID))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}

	return category, nil
}

// GetByName implements store.CategoryStore.GetByName
func (s *PostgresCategoryStore) GetByName(ctx context.Context, userID int64, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND name = $2`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, MapError(err)
	}
	return category, nil
}

// NameExists implements store.CategoryStore.NameExists
func (s *PostgresCategoryStore) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2)`,
		userID, name).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// ListByUser implements store.CategoryStore.ListByUser
// Categories come back in ascending name order.
func (s *PostgresCategoryStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Category, error) {
	return s.List(ctx, store.ListQuery{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: []store.Order{store.Asc("name")},
	})
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clauses, args := buildListClauses(q)
	query := `SELECT ` + categoryColumns + ` FROM categories` + clauses

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return categories, nil
}

// Count implements store.CategoryStore.Count
func (s *PostgresCategoryStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	where, args := buildWhere(filters, 0)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`+where, args...).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, id int64, update store.CategoryUpdate) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsZero() {
		return s.GetByID(ctx, id)
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Color != nil {
		add("color", *update.Color)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE categories SET %s WHERE id = $%d RETURNING `+categoryColumns,
		joinSet(set), len(args),
	)

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found for update", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		if IsUniqueViolation(err) {
			return nil, MapUniqueViolation(err, categoryNameConstraint, store.ErrCategoryNameExists)
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}

	log.Info("category updated successfully", slog.Int64("category_id", id))
	return category, nil
}

// Delete implements store.CategoryStore.Delete
// Tasks referencing the category keep existing; their category_id is set
// to NULL at the schema level.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		log.Debug("category not found for delete", slog.Int64("category_id", id))
		return err
	}

	log.Info("category deleted successfully", slog.Int64("category_id", id))
	return nil
}

// Exists implements store.CategoryStore.Exists
func (s *PostgresCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}
