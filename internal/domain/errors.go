// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity or input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUsernameTooShort is returned when a username is shorter than
	// the minimum length required at registration.
	ErrUsernameTooShort = fmt.Errorf(
		"%w: invalid username format: it must be at least 3 characters long",
		ErrValidation,
	)

	// ErrPasswordTooShort is returned when a password is shorter than
	// the minimum length required at registration.
	ErrPasswordTooShort = fmt.Errorf(
		"%w: invalid password format: it must be at least 5 characters long",
		ErrValidation,
	)

	// ErrMissingFavoriteKeys is returned when a favorite is created without
	// both halves of its composite key.
	ErrMissingFavoriteKeys = errors.New("character ID and user ID must be provided")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
