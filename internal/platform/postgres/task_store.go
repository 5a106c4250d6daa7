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

const taskColumns = "id, title, description, status, priority, due_date, user_id, category_id, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		priority    string
		dueDate     sql.NullTime
		categoryID  sql.NullInt64
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&task.UserID,
		&categoryID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if categoryID.Valid {
		id := categoryID.Int64
		task.CategoryID = &id
	}

	return &task, nil
}

// Create implements store.TaskStore.Create
// Tag associations are attached separately via ReplaceTags.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, user_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		task.UserID,
		nullInt64(task.CategoryID),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.UserID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns the bare task row without relations; use GetWithRelations when
// the category and tags are needed.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return task, nil
}

// GetWithRelations implements store.TaskStore.GetWithRelations
func (s *PostgresTaskStore) GetWithRelations(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.loadRelations(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
// Tasks come back newest first with category and tags preloaded.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	userID int64,
	filter store.TaskFilter,
	offset, limit int,
) ([]*domain.Task, error) {
	q := store.ListQuery{
		Offset:  offset,
		Limit:   limit,
		Filters: taskFilters(userID, filter),
		OrderBy: []store.Order{store.Desc("created_at")},
	}

	tasks, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.loadRelations(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByUser implements store.TaskStore.CountByUser
func (s *PostgresTaskStore) CountByUser(ctx context.Context, userID int64, filter store.TaskFilter) (int64, error) {
	return s.Count(ctx, taskFilters(userID, filter)...)
}

// taskFilters renders the optional status/category narrowing plus the
// mandatory owner predicate into store filters.
func taskFilters(userID int64, filter store.TaskFilter) []store.Filter {
	filters := []store.Filter{store.Eq("user_id", userID)}
	if filter.Status != nil {
		filters = append(filters, store.Eq("status", string(*filter.Status)))
	}
	if filter.CategoryID != nil {
		filters = append(filters, store.Eq("category_id", *filter.CategoryID))
	}
	return filters
}

// CountByStatus implements store.TaskStore.CountByStatus
func (s *PostgresTaskStore) CountByStatus(ctx context.Context, userID int64) (map[domain.TaskStatus]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT status, COUNT(id)
		FROM tasks
		WHERE user_id = $1
		GROUP BY status
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to count tasks by status",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	counts := make(map[domain.TaskStatus]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.TaskStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}

// ReplaceTags implements store.TaskStore.ReplaceTags
// The existing association rows are dropped and the new set inserted in
// one statement pair; callers wanting atomicity run this inside a
// transaction via WithTx.
func (s *PostgresTaskStore) ReplaceTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		log.Error("failed to clear task tags",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return MapError(err)
	}

	if len(tagIDs) == 0 {
		log.Debug("cleared task tags", slog.Int64("task_id", taskID))
		return nil
	}

	values := make([]string, len(tagIDs))
	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, taskID)
	for i, tagID := range tagIDs {
		values[i] = fmt.Sprintf("($1, $%d)", i+2)
		args = append(args, tagID)
	}

	query := `INSERT INTO task_tags (task_id, tag_id) VALUES ` + strings.Join(values, ", ")
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert task tags",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return MapError(err)
	}

	log.Debug("replaced task tags",
		slog.Int64("task_id", taskID),
		slog.Int("tag_count", len(tagIDs)))
	return nil
}

// Update implements store.TaskStore.Update
// Only the set fields are written; updated_at is bumped on every
// successful write. The returned task carries no relations.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsZero() {
		return s.GetByID(ctx, id)
	}

	set := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Status != nil {
		add("status", string(*update.Status))
	}
	if update.Priority != nil {
		add("priority", string(*update.Priority))
	}
	if update.DueDate != nil {
		add("due_date", *update.DueDate)
	}
	if update.CategoryID != nil {
		add("category_id", *update.CategoryID)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = $%d RETURNING `+taskColumns,
		joinSet(set), len(args),
	)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Join rows in task_tags cascade at the schema level.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Exists implements store.TaskStore.Exists
func (s *PostgresTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// List implements store.TaskStore.List
// Rows come back without relations; ListByUser preloads them.
func (s *PostgresTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clauses, args := buildListClauses(q)
	query := `SELECT ` + taskColumns + ` FROM tasks` + clauses

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	where, args := buildWhere(filters, 0)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// loadRelations populates Category and Tags for the given tasks with one
// query per relation, mirroring a batched eager load.
func (s *PostgresTaskStore) loadRelations(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	byID := make(map[int64]*domain.Task, len(tasks))
	categoryIDs := make(map[int64]struct{})
	for _, t := range tasks {
		byID[t.ID] = t
		t.Tags = []domain.Tag{}
		if t.CategoryID != nil {
			categoryIDs[*t.CategoryID] = struct{}{}
		}
	}

	if len(categoryIDs) > 0 {
		placeholders := make([]string, 0, len(categoryIDs))
		args := make([]any, 0, len(categoryIDs))
		for id := range categoryIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}

		query := `SELECT ` + categoryColumns + ` FROM categories WHERE id IN (` +
			strings.Join(placeholders, ", ") + `)`
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to load task categories", slog.String("error", err.Error()))
			return MapError(err)
		}

		categories := make(map[int64]*domain.Category)
		for rows.Next() {
			category, err := scanCategory(rows)
			if err != nil {
				closeRows(rows, log)
				return err
			}
			categories[category.ID] = category
		}
		if err := rows.Err(); err != nil {
			closeRows(rows, log)
			return MapError(err)
		}
		closeRows(rows, log)

		for _, t := range tasks {
			if t.CategoryID != nil {
				t.Category = categories[*t.CategoryID]
			}
		}
	}

	placeholders := make([]string, 0, len(tasks))
	args := make([]any, 0, len(tasks))
	for _, t := range tasks {
		args = append(args, t.ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
		SELECT tt.task_id, ` + prefixColumns("t", tagColumns) + `
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.task_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY t.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load task tags", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var taskID int64
		var tag domain.Tag
		err := rows.Scan(
			&taskID,
			&tag.ID,
			&tag.Name,
			&tag.Color,
			&tag.UserID,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if t, ok := byID[taskID]; ok {
			t.Tags = append(t.Tags, tag)
		}
	}
	return MapError(rows.Err())
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
