package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/models"
)

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthFormat    = errors.New("invalid authorization header format")
)

// UserLoader resolves a principal by id. repositories.UserRepository
// satisfies this via Go's implicit interfaces, keeping this package free of
// a storage dependency.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Middleware is the authorization guard. For every protected request it
// extracts the bearer token, verifies it, loads the principal fresh from
// storage, and checks the account-active flag before handing off. The
// principal is never cached across requests.
type Middleware struct {
	tokens *TokenService
	users  UserLoader
	perms  *PermissionTable
	logger *zap.Logger
}

// NewMiddleware creates the guard with its collaborators.
func NewMiddleware(tokens *TokenService, users UserLoader, perms *PermissionTable, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		perms:  perms,
		logger: logger,
	}
}

// RequireUser authenticates the request and injects the principal into the
// context. A missing or invalid token, and a subject with no matching
// account, all produce the same 401 so that account existence cannot be
// probed through the guard.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.resolvePrincipal(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin authenticates the request and additionally rejects
// principals whose role is not admin.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.resolvePrincipal(w, r)
		if !ok {
			return
		}
		if user.Role != models.RoleAdmin {
			m.forbidden(w)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequirePermission authenticates the request and rejects principals whose
// role does not hold perm in the permission table. Unknown roles fail
// closed.
func (m *Middleware) RequirePermission(perm Permission) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := m.resolvePrincipal(w, r)
			if !ok {
				return
			}
			if !m.perms.Has(user.Role, perm) {
				m.forbidden(w)
				return
			}
			next(w, r.WithContext(WithUser(r.Context(), user)))
		}
	}
}

// resolvePrincipal runs guard steps 1-4: token extraction, verification,
// principal load, active check. On failure it writes the response and
// returns false.
func (m *Middleware) resolvePrincipal(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	tokenString, err := extractBearerToken(r)
	if err != nil {
		m.logger.Debug("No bearer token in request",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method))
		m.unauthorized(w)
		return nil, false
	}

	userID, err := m.tokens.Verify(tokenString)
	if err != nil {
		m.logger.Debug("Token verification failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		m.unauthorized(w)
		return nil, false
	}

	user, err := m.users.GetByID(r.Context(), userID)
	if err != nil {
		// Indistinguishable from a bad token to avoid account enumeration.
		m.logger.Debug("Token subject did not resolve to an account",
			zap.Int64("user_id", userID),
			zap.Error(err))
		m.unauthorized(w)
		return nil, false
	}

	if !user.IsActive {
		m.inactive(w)
		return nil, false
	}

	return user, true
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthorization
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthFormat
	}
	return parts[1], nil
}

// unauthorized returns a 401 response with JSON error body.
func (m *Middleware) unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "Could not validate credentials",
	})
}

// inactive returns a 400 response for deactivated accounts.
func (m *Middleware) inactive(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "inactive_user",
		"message": "Inactive user",
	})
}

// forbidden returns a 403 response with JSON error body.
func (m *Middleware) forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "forbidden",
		"message": "Insufficient permissions",
	})
}
