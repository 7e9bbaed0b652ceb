package store

import (
	"context"

	"github.com/comicshelf/comicshelf-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The HashedPassword field must
	// already be populated; the store never sees plaintext passwords.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username, including the password
	// hash. Returns ErrUserNotFound if the user does not exist. Callers are
	// responsible for stripping the hash before the user leaves the service
	// layer.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
