package api

import (
	"errors"
	"net/http"

	"github.com/comicshelf/comicshelf-api/internal/api/shared"
	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/service"
	"github.com/comicshelf/comicshelf-api/internal/service/auth"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Duplicate errors surface as bad requests, matching the wire contract
	// rather than the more conventional 409.
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingFavoriteKeys):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Handlers usually build their own client messages with
// request detail (usernames, character ids); this is the fallback for errors
// that reach the terminal handler unmapped.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username/password"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrFavoriteNotFound):
		return "No Character"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, store.ErrFavoriteExists):
		return "Character is already associated with this user."

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingFavoriteKeys):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError is the terminal error handler: it maps an internal error to
// a status and sanitized message, logs the real error server-side, and
// writes the standard error envelope.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
