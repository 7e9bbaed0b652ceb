package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// FavoriteService owns the user/character association: create with duplicate
// guard and catalog upsert, list, and remove. It knows the user only as an
// opaque numeric ID supplied by the already-authenticated request context.
type FavoriteService interface {
	// Add associates a character with a user, lazily inserting the character
	// into the shared catalog on first favorite by any user. Returns the
	// joined view after creation. Returns domain.ErrMissingFavoriteKeys when
	// either key is absent and store.ErrFavoriteExists when the pair is
	// already linked.
	Add(
		ctx context.Context,
		userID int64,
		characterID, name, image, description string,
	) (*domain.Favorite, error)

	// Remove deletes the association.
	// Returns store.ErrFavoriteNotFound when there was nothing to delete.
	Remove(ctx context.Context, userID int64, characterID string) error

	// List returns all characters favorited by the user, ordered by catalog
	// insertion order descending. Empty slice when the user has none.
	List(ctx context.Context, userID int64) ([]*domain.Character, error)
}

// FavoriteServiceImpl implements the FavoriteService interface.
type FavoriteServiceImpl struct {
	favoriteStore store.FavoriteStore
	logger        *slog.Logger
}

var _ FavoriteService = (*FavoriteServiceImpl)(nil)

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteStore store.FavoriteStore, logger *slog.Logger) *FavoriteServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteServiceImpl{
		favoriteStore: favoriteStore,
		logger:        logger.With(slog.String("component", "favorite_service")),
	}
}

// Add implements FavoriteService.Add.
//
// The duplicate pre-check is a fast path for a friendly error message only.
// The composite primary key on user_characters is the real invariant
// enforcer: when two concurrent calls race past the pre-check, one insert
// fails with a unique violation and surfaces the same ErrFavoriteExists.
func (s *FavoriteServiceImpl) Add(
	ctx context.Context,
	userID int64,
	characterID, name, image, description string,
) (*domain.Favorite, error) {
	if userID == 0 || characterID == "" {
		return nil, domain.ErrMissingFavoriteKeys
	}

	exists, err := s.favoriteStore.Exists(ctx, userID, characterID)
	if err != nil {
		s.logger.Error("failed to check for existing favorite",
			"error", err,
			"user_id", userID,
			"character_id", characterID)
		return nil, fmt.Errorf("failed to check for existing favorite: %w", err)
	}
	if exists {
		return nil, store.ErrFavoriteExists
	}

	// Insert-or-ignore: the first favoriter's metadata wins and later
	// favoriters never overwrite it.
	ch := &domain.Character{
		CharacterID: characterID,
		Name:        name,
		Image:       image,
		Description: description,
	}
	if err := s.favoriteStore.UpsertCharacter(ctx, ch); err != nil {
		s.logger.Error("failed to upsert character",
			"error", err,
			"character_id", characterID)
		return nil, fmt.Errorf("failed to upsert character: %w", err)
	}

	if err := s.favoriteStore.Link(ctx, userID, characterID); err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			// Lost the race to a concurrent Add for the same pair.
			return nil, err
		}
		s.logger.Error("failed to link favorite",
			"error", err,
			"user_id", userID,
			"character_id", characterID)
		return nil, fmt.Errorf("failed to link favorite: %w", err)
	}

	fav, err := s.favoriteStore.GetFavorite(ctx, userID, characterID)
	if err != nil {
		s.logger.Error("failed to read back favorite",
			"error", err,
			"user_id", userID,
			"character_id", characterID)
		return nil, fmt.Errorf("failed to read back favorite: %w", err)
	}

	s.logger.Info("favorite created",
		"user_id", userID,
		"character_id", characterID)
	return fav, nil
}

// Remove implements FavoriteService.Remove.
func (s *FavoriteServiceImpl) Remove(ctx context.Context, userID int64, characterID string) error {
	if err := s.favoriteStore.Unlink(ctx, userID, characterID); err != nil {
		if errors.Is(err, store.ErrFavoriteNotFound) {
			return err
		}
		s.logger.Error("failed to remove favorite",
			"error", err,
			"user_id", userID,
			"character_id", characterID)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	s.logger.Info("favorite removed",
		"user_id", userID,
		"character_id", characterID)
	return nil
}

// List implements FavoriteService.List.
func (s *FavoriteServiceImpl) List(ctx context.Context, userID int64) ([]*domain.Character, error) {
	characters, err := s.favoriteStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favorites",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return characters, nil
}
