package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

type favoriteKey struct {
	userID      int64
	characterID string
}

// MockFavoriteStore implements store.FavoriteStore for testing. The default
// implementation keeps an in-memory catalog and association set that mirrors
// the relational semantics, including insert-or-ignore on the catalog and
// catalog-insertion-order listing.
type MockFavoriteStore struct {
	// Function fields for customizable behavior
	ExistsFn          func(ctx context.Context, userID int64, characterID string) (bool, error)
	UpsertCharacterFn func(ctx context.Context, ch *domain.Character) error
	LinkFn            func(ctx context.Context, userID int64, characterID string) error
	GetFavoriteFn     func(ctx context.Context, userID int64, characterID string) (*domain.Favorite, error)
	UnlinkFn          func(ctx context.Context, userID int64, characterID string) error
	ListByUserFn      func(ctx context.Context, userID int64) ([]*domain.Character, error)

	mu         sync.Mutex
	characters map[string]*domain.Character
	links      map[favoriteKey]struct{}
	nextID     int64
}

var _ store.FavoriteStore = (*MockFavoriteStore)(nil)

// NewMockFavoriteStore creates a new mock store with initialized defaults
func NewMockFavoriteStore() *MockFavoriteStore {
	return &MockFavoriteStore{
		characters: make(map[string]*domain.Character),
		links:      make(map[favoriteKey]struct{}),
	}
}

// Exists implements the store.FavoriteStore interface
func (m *MockFavoriteStore) Exists(
	ctx context.Context,
	userID int64,
	characterID string,
) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, userID, characterID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.links[favoriteKey{userID, characterID}]
	return ok, nil
}

// UpsertCharacter implements the store.FavoriteStore interface
func (m *MockFavoriteStore) UpsertCharacter(ctx context.Context, ch *domain.Character) error {
	if m.UpsertCharacterFn != nil {
		return m.UpsertCharacterFn(ctx, ch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.characters[ch.CharacterID]; ok {
		// Insert-or-ignore: existing metadata stays.
		return nil
	}
	m.nextID++
	stored := *ch
	stored.CatalogID = m.nextID
	m.characters[ch.CharacterID] = &stored
	return nil
}

// Link implements the store.FavoriteStore interface
func (m *MockFavoriteStore) Link(ctx context.Context, userID int64, characterID string) error {
	if m.LinkFn != nil {
		return m.LinkFn(ctx, userID, characterID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := favoriteKey{userID, characterID}
	if _, ok := m.links[key]; ok {
		return store.ErrFavoriteExists
	}
	m.links[key] = struct{}{}
	return nil
}

// GetFavorite implements the store.FavoriteStore interface
func (m *MockFavoriteStore) GetFavorite(
	ctx context.Context,
	userID int64,
	characterID string,
) (*domain.Favorite, error) {
	if m.GetFavoriteFn != nil {
		return m.GetFavoriteFn(ctx, userID, characterID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[favoriteKey{userID, characterID}]; !ok {
		return nil, store.ErrFavoriteNotFound
	}
	ch, ok := m.characters[characterID]
	if !ok {
		return nil, store.ErrFavoriteNotFound
	}
	return &domain.Favorite{
		CharacterID: ch.CharacterID,
		Name:        ch.Name,
		Image:       ch.Image,
		Description: ch.Description,
		UserID:      userID,
	}, nil
}

// Unlink implements the store.FavoriteStore interface
func (m *MockFavoriteStore) Unlink(ctx context.Context, userID int64, characterID string) error {
	if m.UnlinkFn != nil {
		return m.UnlinkFn(ctx, userID, characterID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := favoriteKey{userID, characterID}
	if _, ok := m.links[key]; !ok {
		return store.ErrFavoriteNotFound
	}
	delete(m.links, key)
	return nil
}

// ListByUser implements the store.FavoriteStore interface
func (m *MockFavoriteStore) ListByUser(
	ctx context.Context,
	userID int64,
) ([]*domain.Character, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*domain.Character{}
	for key := range m.links {
		if key.userID != userID {
			continue
		}
		if ch, ok := m.characters[key.characterID]; ok {
			copy := *ch
			result = append(result, &copy)
		}
	}
	// Catalog insertion order descending, matching the relational store.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CatalogID > result[j].CatalogID
	})
	return result, nil
}
