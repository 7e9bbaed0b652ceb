// Package shared holds the request/response helpers and context keys used
// by the API handlers and middleware.
package shared

import (
	"context"

	"github.com/comicshelf/comicshelf-api/internal/service/auth"
	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey is the context key for the verified token claims
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// WithIdentity returns a copy of ctx carrying the verified claims as the
// request's current identity.
func WithIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, IdentityContextKey, claims)
}

// GetIdentity retrieves the current identity from the context.
// Returns the claims and a boolean indicating whether an identity was
// attached; requests that carried no token, or an invalid one, have none.
func GetIdentity(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(IdentityContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.New().String())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
