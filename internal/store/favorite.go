package store

import (
	"context"

	"github.com/comicshelf/comicshelf-api/internal/domain"
)

// FavoriteStore defines the interface for the user/character association and
// the shared character catalog. It references the user only through an opaque
// numeric ID supplied by the already-authenticated request; it performs no
// identity lookups itself.
type FavoriteStore interface {
	// Exists reports whether the (userID, characterID) association is
	// already present. This is the fast-path duplicate check; the composite
	// primary key remains the true invariant enforcer.
	Exists(ctx context.Context, userID int64, characterID string) (bool, error)

	// UpsertCharacter inserts the character into the shared catalog unless a
	// row with the same character ID already exists, in which case the
	// insert is a no-op and existing metadata is left untouched.
	UpsertCharacter(ctx context.Context, ch *domain.Character) error

	// Link creates the (userID, characterID) association.
	// Returns ErrFavoriteExists when the pair is already linked.
	Link(ctx context.Context, userID int64, characterID string) error

	// GetFavorite returns the joined character/association view for the pair.
	// Returns ErrFavoriteNotFound if the association does not exist.
	GetFavorite(ctx context.Context, userID int64, characterID string) (*domain.Favorite, error)

	// Unlink removes the (userID, characterID) association.
	// Returns ErrFavoriteNotFound if there was nothing to delete.
	Unlink(ctx context.Context, userID int64, characterID string) error

	// ListByUser returns all characters favorited by the user, ordered by
	// catalog insertion order descending. Returns an empty slice, never an
	// error, when the user has no favorites.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Character, error)
}
