package mocks

import (
	"context"
	"sync"

	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	// Data for the default map-backed implementation
	mu     sync.Mutex
	Users  map[string]*domain.User
	nextID int64

	CreateError error
	GetError    error
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Users[user.Username]; exists {
		return store.ErrUsernameExists
	}

	m.nextID++
	user.ID = m.nextID
	m.Users[user.Username] = user
	return nil
}

// GetByUsername implements the store.UserStore interface
func (m *MockUserStore) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.Users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	copy := *user
	return &copy, nil
}
