package database

import "context"

type contextKey string

// RequestScopeKey is the context key for storing the per-request database
// session.
const RequestScopeKey contextKey = "requestScope"

// GetRequestScope retrieves the per-request database session from context.
// Returns nil and false if not present.
func GetRequestScope(ctx context.Context) (*RequestScope, bool) {
	scope, ok := ctx.Value(RequestScopeKey).(*RequestScope)
	return scope, ok
}

// SetRequestScope stores the per-request database session in context.
func SetRequestScope(ctx context.Context, scope *RequestScope) context.Context {
	return context.WithValue(ctx, RequestScopeKey, scope)
}
