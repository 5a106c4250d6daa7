// Package main implements the entry point for the task management API
// server, which handles users' tasks, categories, and tags behind a
// JWT-authenticated HTTP interface.
package main

import (
	"context"
	"flag"
	"log"
	"os"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if *migrateCmd != "" {
		if err := app.runMigrations(context.Background(), *migrateCmd); err != nil {
			app.logger.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
