// Package auth provides the token and password capabilities consumed by the
// identity service and the request middleware.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT containing the user's identity.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims containing the identity if the token is
	// valid, or an error if validation fails (expired, invalid signature,
	// malformed, etc.). Verification failures are ordinary errors, never a
	// reason to abort the request pipeline.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the identity carried by a verified token.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// Username is the natural key of the user the token was issued for.
	Username string `json:"username,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
