package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/comicshelf/comicshelf-api/internal/config"
	"github.com/comicshelf/comicshelf-api/internal/platform/postgres"
	"github.com/comicshelf/comicshelf-api/internal/service"
	"github.com/comicshelf/comicshelf-api/internal/service/auth"
)

// application holds the wired dependencies for the server: configuration,
// the database handle, and the service layer built on top of it.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService      auth.JWTService
	userService     service.UserService
	favoriteService service.FavoriteService
}

// newApplication constructs the dependency graph bottom-up: stores over the
// database handle, capabilities from configuration, services over both.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	favoriteStore := postgres.NewPostgresFavoriteStore(db, logger)

	userService := service.NewUserService(
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)
	favoriteService := service.NewFavoriteService(favoriteStore, logger)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		userService:     userService,
		favoriteService: favoriteService,
	}, nil
}
