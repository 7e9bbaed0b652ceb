package api

import "github.com/comicshelf/comicshelf-api/internal/domain"

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the token request body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by both registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse wraps a user projection under the "user" key.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// AddFavoriteRequest represents the body of a favorite-creation request.
// UserID travels in the body rather than being derived from the token; the
// route guard has already proven the caller owns the username in the path.
type AddFavoriteRequest struct {
	CharacterID string `json:"characterId" validate:"required"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	UserID      int64  `json:"userId" validate:"required"`
}

// RemoveFavoriteRequest represents the body of a favorite-removal request.
type RemoveFavoriteRequest struct {
	UserID      int64  `json:"userId" validate:"required"`
	CharacterID string `json:"characterId" validate:"required"`
}

// FavoriteResponse wraps a single favorite view under the "character" key.
type FavoriteResponse struct {
	Character *domain.Favorite `json:"character"`
}

// FavoriteListResponse wraps the favorites listing. The singular key is a
// wire-format commitment; clients depend on it.
type FavoriteListResponse struct {
	Character []*domain.Character `json:"character"`
}

// DeletedResponse acknowledges a favorite removal.
type DeletedResponse struct {
	Deleted string `json:"deleted"`
}
