// Package api contains the HTTP handlers: thin adapters that decode request
// bodies, call the service layer, and serialize results or error envelopes.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/comicshelf/comicshelf-api/internal/api/shared"
	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/service"
	"github.com/comicshelf/comicshelf-api/internal/service/auth"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			shared.RespondWithError(w, r, http.StatusBadRequest,
				fmt.Sprintf("Duplicate username: %s", req.Username))
		case errors.Is(err, domain.ErrValidation):
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to register user", err)
		}
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TokenResponse{Token: token})
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		// A wrong-shaped login is indistinguishable from wrong credentials.
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid username/password")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid username/password")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.Username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
