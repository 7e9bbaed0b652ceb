// Package main implements the entry point for the comicshelf API server:
// user registration and login with bearer tokens, and per-user comic-book
// character favorites.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/comicshelf/comicshelf-api/internal/config"
	"github.com/comicshelf/comicshelf-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application, applies migrations, and
// serves HTTP until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, db, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
