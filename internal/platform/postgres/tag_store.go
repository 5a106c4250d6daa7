package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/platform/logger"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// tagNameConstraint is the (user_id, name) unique constraint on tags.
const tagNameConstraint = "uk_user_tag"

const tagColumns = "id, name, color, user_id, created_at, updated_at"

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the
// TagStore interface.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// WithTx implements store.TagStore.WithTx
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{db: tx, logger: s.logger}
}

func scanTag(row interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var tag domain.Tag
	err := row.Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.UserID,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create implements store.TagStore.Create
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		log.Warn("tag validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tags (name, color, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		tag.Name,
		tag.Color,
		tag.UserID,
		tag.CreatedAt,
		tag.UpdatedAt,
	).Scan(&tag.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate tag name",
				slog.String("name", tag.Name),
				slog.Int64("user_id", tag.UserID))
			return MapUniqueViolation(err, tagNameConstraint, store.ErrTagNameExists)
		}
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.Int64("user_id", tag.UserID))
		return MapError(err)
	}

	log.Info("tag created successfully",
		slog.Int64("tag_id", tag.ID),
		slog.Int64("user_id", tag.UserID))
	return nil
}

// GetByID implements store.TagStore.GetByID
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *PostgresTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`

	tag, err := scanTag(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tag not found", slog.Int64("tag_id", id))
			return nil, store.ErrTagNotFound
		}
		log.Error("failed to get tag by ID",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", id))
		return nil, MapError(err)
	}

	return tag, nil
}

// GetByName implements store.TagStore.GetByName
func (s *PostgresTagStore) GetByName(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND name = $2`

	tag, err := scanTag(s.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		return nil, MapError(err)
	}
	return tag, nil
}

// NameExists implements store.TagStore.NameExists
func (s *PostgresTagStore) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE user_id = $1 AND name = $2)`,
		userID, name).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// GetByIDs implements store.TagStore.GetByIDs
// The user_id predicate is what makes foreign tag ids drop out silently:
// only rows the user owns come back.
func (s *PostgresTagStore) GetByIDs(ctx context.Context, userID int64, ids []int64) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to get tags by ids",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	tags := []*domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tags, nil
}

// ListByUser implements store.TagStore.ListByUser
// Tags come back in ascending name order.
func (s *PostgresTagStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	return s.List(ctx, store.ListQuery{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: []store.Order{store.Asc("name")},
	})
}

// List implements store.TagStore.List
func (s *PostgresTagStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clauses, args := buildListClauses(q)
	query := `SELECT ` + tagColumns + ` FROM tags` + clauses

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	tags := []*domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			log.Error("failed to scan tag row", slog.String("error", err.Error()))
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tags, nil
}

// Count implements store.TagStore.Count
func (s *PostgresTagStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	where, args := buildWhere(filters, 0)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`+where, args...).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Update implements store.TagStore.Update
func (s *PostgresTagStore) Update(ctx context.Context, id int64, update store.TagUpdate) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsZero() {
		return s.GetByID(ctx, id)
	}

	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Color != nil {
		add("color", *update.Color)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tags SET %s WHERE id = $%d RETURNING `+tagColumns,
		joinSet(set), len(args),
	)

	tag, err := scanTag(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tag not found for update", slog.Int64("tag_id", id))
			return nil, store.ErrTagNotFound
		}
		if IsUniqueViolation(err) {
			return nil, MapUniqueViolation(err, tagNameConstraint, store.ErrTagNameExists)
		}
		log.Error("failed to update tag",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", id))
		return nil, MapError(err)
	}

	log.Info("tag updated successfully", slog.Int64("tag_id", id))
	return tag, nil
}

// Delete implements store.TagStore.Delete
// Join rows in task_tags cascade at the schema level.
func (s *PostgresTagStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		log.Debug("tag not found for delete", slog.Int64("tag_id", id))
		return err
	}

	log.Info("tag deleted successfully", slog.Int64("tag_id", id))
	return nil
}

// Exists implements store.TagStore.Exists
func (s *PostgresTagStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}
