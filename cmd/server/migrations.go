package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

// runMigrations executes the named goose command against the configured
// database and returns once it completes.
func (app *application) runMigrations(ctx context.Context, command string) error {
	goose.SetLogger(gooseLogger{app: app})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, app.db, migrationsDir)
	case "down":
		return goose.DownContext(ctx, app.db, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, app.db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}

// gooseLogger adapts goose's logger interface onto the application logger.
type gooseLogger struct {
	app *application
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.app.logger.Error(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.app.logger.Info(fmt.Sprintf(format, v...))
}
