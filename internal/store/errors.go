package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrUserNotFound, ErrFavoriteNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrFavoriteNotFound indicates that the requested user/character
	// association does not exist in the store.
	ErrFavoriteNotFound = fmt.Errorf("%w: favorite", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a user with the given username already
	// exists. Returned from the registration duplicate check as well as from
	// the unique constraint on the users table.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrFavoriteExists indicates the character is already associated with
	// the user. Returned from the fast-path duplicate check as well as from
	// unique violations on the user_characters composite key, so concurrent
	// inserts of the same pair surface the same error.
	ErrFavoriteExists = fmt.Errorf("%w: favorite", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
