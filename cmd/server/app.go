package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/1wzhdxtx/task-management-system/internal/config"
	"github.com/1wzhdxtx/task-management-system/internal/platform/logger"
	"github.com/1wzhdxtx/task-management-system/internal/platform/postgres"
	"github.com/1wzhdxtx/task-management-system/internal/service"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// application holds the wired dependencies of one server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	tagStore      store.TagStore

	jwtService auth.JWTService
	hasher     *auth.BcryptHasher

	authService     service.AuthService
	userService     service.UserService
	taskService     service.TaskService
	categoryService service.CategoryService
	tagService      service.TagService
}

// newApplication loads configuration and wires every component of the
// server, from the database connection up to the HTTP-facing services.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewPostgresUserStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db, log)
	categoryStore := postgres.NewPostgresCategoryStore(db, log)
	tagStore := postgres.NewPostgresTagStore(db, log)

	app := &application{
		config:        cfg,
		logger:        log,
		db:            db,
		userStore:     userStore,
		taskStore:     taskStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		jwtService:    jwtService,
		hasher:        hasher,
	}

	app.authService = service.NewAuthService(userStore, hasher, hasher, jwtService, db, log)
	app.userService = service.NewUserService(userStore, hasher, db, log)
	app.taskService = service.NewTaskService(taskStore, categoryStore, tagStore, db, log)
	app.categoryService = service.NewCategoryService(categoryStore, log)
	app.tagService = service.NewTagService(tagStore, log)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
