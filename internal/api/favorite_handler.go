package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/comicshelf/comicshelf-api/internal/api/shared"
	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/service"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// FavoriteHandler handles the user-to-character favorites routes.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler with the given dependencies.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add handles POST /characters/favorite/{username}/{handle}.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, domain.ErrMissingFavoriteKeys.Error())
		return
	}

	favorite, err := h.favoriteService.Add(
		r.Context(), req.UserID, req.CharacterID, req.Name, req.Image, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrFavoriteExists):
			shared.RespondWithError(w, r, http.StatusBadRequest,
				fmt.Sprintf("Character %s is already associated with this user.", req.CharacterID))
		case errors.Is(err, domain.ErrMissingFavoriteKeys):
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to add favorite", err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, FavoriteResponse{Character: favorite})
}

// List handles GET /characters/favorite/{username}/{handle}. The handle path
// segment carries the numeric user ID; with no request body on a GET there
// is nowhere else for it to travel.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	userID, err := strconv.ParseInt(handle, 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Invalid user id: %s", handle))
		return
	}

	characters, err := h.favoriteService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list favorites", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FavoriteListResponse{Character: characters})
}

// Remove handles DELETE /characters/favorite/{username}/{handle}.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req RemoveFavoriteRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, domain.ErrMissingFavoriteKeys.Error())
		return
	}

	if err := h.favoriteService.Remove(r.Context(), req.UserID, req.CharacterID); err != nil {
		if errors.Is(err, store.ErrFavoriteNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No Character")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to remove favorite", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeletedResponse{Deleted: "Character Deleted"})
}
