package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/platform/logger"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// PostgresFavoriteStore implements the store.FavoriteStore interface
// using a PostgreSQL database as the storage backend.
//
// No in-process locking happens here: the composite primary key on
// user_characters is what makes concurrent duplicate favorites impossible,
// and it keeps working across multiple server instances.
type PostgresFavoriteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFavoriteStore creates a new PostgreSQL implementation of the
// FavoriteStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFavoriteStore(db store.DBTX, logger *slog.Logger) *PostgresFavoriteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFavoriteStore{
		db:     db,
		logger: logger.With(slog.String("component", "favorite_store")),
	}
}

// Ensure PostgresFavoriteStore implements store.FavoriteStore interface
var _ store.FavoriteStore = (*PostgresFavoriteStore)(nil)

// Exists implements store.FavoriteStore.Exists
func (s *PostgresFavoriteStore) Exists(
	ctx context.Context,
	userID int64,
	characterID string,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, character_id
		FROM user_characters
		WHERE user_id = $1 AND character_id = $2
	`

	var uid int64
	var cid string
	err := s.db.QueryRowContext(ctx, query, userID, characterID).Scan(&uid, &cid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Error("failed to check favorite existence",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return false, err
	}

	return true, nil
}

// UpsertCharacter implements store.FavoriteStore.UpsertCharacter
// The insert is a no-op when the character already exists, so the first
// favoriter's metadata wins and later favoriters never overwrite it.
func (s *PostgresFavoriteStore) UpsertCharacter(
	ctx context.Context,
	ch *domain.Character,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO characters (character_id, name, image, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (character_id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query, ch.CharacterID, ch.Name, ch.Image, ch.Description)
	if err != nil {
		log.Error("failed to upsert character",
			slog.String("error", err.Error()),
			slog.String("character_id", ch.CharacterID))
		return err
	}

	return nil
}

// Link implements store.FavoriteStore.Link
// Returns store.ErrFavoriteExists when the composite primary key fires,
// which is how a lost race against a concurrent Link surfaces.
func (s *PostgresFavoriteStore) Link(
	ctx context.Context,
	userID int64,
	characterID string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_characters (user_id, character_id)
		VALUES ($1, $2)
	`

	_, err := s.db.ExecContext(ctx, query, userID, characterID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("favorite already linked",
				slog.Int64("user_id", userID),
				slog.String("character_id", characterID))
			return store.ErrFavoriteExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("favorite references missing user or character",
				slog.String("error", err.Error()),
				slog.Int64("user_id", userID),
				slog.String("character_id", characterID))
			return fmt.Errorf("favorite references a missing entity: %w", err)
		}
		log.Error("failed to link favorite",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return err
	}

	return nil
}

// GetFavorite implements store.FavoriteStore.GetFavorite
func (s *PostgresFavoriteStore) GetFavorite(
	ctx context.Context,
	userID int64,
	characterID string,
) (*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.character_id, c.name, c.image, c.description, uc.user_id
		FROM characters c
		JOIN user_characters uc ON c.character_id = uc.character_id
		WHERE uc.user_id = $1 AND c.character_id = $2
	`

	var fav domain.Favorite
	err := s.db.QueryRowContext(ctx, query, userID, characterID).Scan(
		&fav.CharacterID,
		&fav.Name,
		&fav.Image,
		&fav.Description,
		&fav.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFavoriteNotFound
		}
		log.Error("failed to get favorite",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return nil, err
	}

	return &fav, nil
}

// Unlink implements store.FavoriteStore.Unlink
// Returns store.ErrFavoriteNotFound when no row matched the pair.
func (s *PostgresFavoriteStore) Unlink(
	ctx context.Context,
	userID int64,
	characterID string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM user_characters
		WHERE user_id = $1 AND character_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, userID, characterID)
	if err != nil {
		log.Error("failed to delete favorite",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("favorite not found for delete",
			slog.Int64("user_id", userID),
			slog.String("character_id", characterID))
		return store.ErrFavoriteNotFound
	}

	return nil
}

// ListByUser implements store.FavoriteStore.ListByUser
// Ordering follows the catalog's insertion-order id descending, not the
// favorite time for this user.
func (s *PostgresFavoriteStore) ListByUser(
	ctx context.Context,
	userID int64,
) ([]*domain.Character, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.character_id, c.name, c.image, c.description
		FROM characters c
		JOIN user_characters uc ON c.character_id = uc.character_id
		WHERE uc.user_id = $1
		ORDER BY c.id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query favorites",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var characters []*domain.Character
	for rows.Next() {
		var ch domain.Character
		err := rows.Scan(
			&ch.CatalogID,
			&ch.CharacterID,
			&ch.Name,
			&ch.Image,
			&ch.Description,
		)
		if err != nil {
			log.Error("failed to scan character row",
				slog.String("error", err.Error()))
			return nil, err
		}
		characters = append(characters, &ch)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if the user has no favorites
	if characters == nil {
		characters = []*domain.Character{}
	}

	return characters, nil
}
