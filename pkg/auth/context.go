package auth

import (
	"context"
	"fmt"

	"github.com/projecthub-io/projecthub/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key under which the guard stores the resolved
// principal.
const UserKey contextKey = "user"

// WithUser stores the resolved principal in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser retrieves the resolved principal from the context.
// Returns nil and false if no principal is present.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// RequireUserFromContext retrieves the principal and errors if absent. Use
// in services that must not run without an authenticated caller.
func RequireUserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := GetUser(ctx)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return user, nil
}
