package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/comicshelf/comicshelf-api/internal/api"
	apimiddleware "github.com/comicshelf/comicshelf-api/internal/api/middleware"
	"github.com/comicshelf/comicshelf-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	userHandler := api.NewUserHandler(app.userService)
	favoriteHandler := api.NewFavoriteHandler(app.favoriteService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	// Identity is attached on every request; the gates below reject.
	r.Use(authMiddleware.Identify)

	// Public endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Welcome to the comicshelf API")); err != nil {
			app.logger.Error("Failed to write banner response", "error", err)
		}
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/token", authHandler.Token)

	// Owner-gated endpoints: the username path parameter must match the
	// authenticated identity.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.EnsureCorrectUser)

		r.Get("/users/{username}", userHandler.Get)
		r.Route("/characters/favorite/{username}/{handle}", func(r chi.Router) {
			r.Post("/", favoriteHandler.Add)
			r.Get("/", favoriteHandler.List)
			r.Delete("/", favoriteHandler.Remove)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not Found")
	})

	return r
}
