// Package service implements the application's domain operations over the
// persistence interfaces in internal/store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comicshelf/comicshelf-api/internal/domain"
	"github.com/comicshelf/comicshelf-api/internal/service/auth"
	"github.com/comicshelf/comicshelf-api/internal/store"
)

// UserService provides identity operations: registration, authentication,
// and identity lookup. Password hashes never leave this layer.
type UserService interface {
	// Register validates credential shape, rejects duplicate usernames, and
	// stores a new user with a hashed password. Returns the public identity.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Authenticate verifies a username/password pair. An unknown username
	// and a wrong password both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Get returns the identity projection for the username.
	// Returns store.ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, username string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	if err := domain.ValidateCredentials(username, password); err != nil {
		s.logger.Debug("registration rejected: invalid credential shape",
			"error", err,
			"username", username)
		return nil, err
	}

	// Fast-path duplicate check for a friendly error; the unique constraint
	// on users.username catches concurrent registrations.
	_, err := s.userStore.GetByUsername(ctx, username)
	if err == nil {
		s.logger.Debug("registration rejected: duplicate username",
			"username", username)
		return nil, store.ErrUsernameExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate username: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "username", username)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{Username: username, HashedPassword: hashed}
	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "username", username)
	return user.Public(), nil
}

// Authenticate implements UserService.Authenticate.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: no such user", "username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user.Public(), nil
}

// Get implements UserService.Get.
func (s *UserServiceImpl) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user.Public(), nil
}
