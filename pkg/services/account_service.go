// Package services contains the business rules sitting between the HTTP
// handlers and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/models"
	"github.com/projecthub-io/projecthub/pkg/repositories"
)

// dummyBcryptHash is compared against when a login names an unknown
// username, so both failure paths pay the bcrypt cost and the response
// time does not reveal whether the account exists.
const dummyBcryptHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// RegisterParams carries the fields accepted at registration. Role is
// caller-supplied and defaults to "user" when empty; values outside the
// role enum are rejected.
type RegisterParams struct {
	Username string
	Password string
	Email    *string
	FullName *string
	Role     string
}

// LoginResult bundles a fresh access token with the authenticated user.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

// AccountService registers and authenticates users.
type AccountService interface {
	// Register creates a new account. Returns apperrors.ErrConflict if the
	// username is already taken and apperrors.ErrInvalidRole for role
	// values outside the enum.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Authenticate verifies the credentials and issues an access token.
	// Unknown username and wrong password both return
	// apperrors.ErrInvalidCredentials; callers must not distinguish them.
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
}

// accountService implements AccountService.
type accountService struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, logger *zap.Logger) AccountService {
	return &accountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *accountService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	role := params.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	// Case-sensitive exact-match existence check. Concurrent identical
	// registrations can race past this; the unique index on username is
	// the backstop and surfaces as ErrConflict from Create.
	_, err := s.users.GetByUsername(ctx, params.Username)
	if err == nil {
		return nil, apperrors.ErrConflict
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       params.Username,
		Email:          params.Email,
		FullName:       params.FullName,
		Role:           role,
		IsActive:       true,
		HashedPassword: hashed,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Registered user",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role))

	return user, nil
}

// Authenticate verifies the credentials and issues an access token bound to
// the user's id.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a comparison anyway so the unknown-username path costs
			// the same as a failed password check.
			s.hasher.Verify(password, dummyBcryptHash)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		User:        user,
	}, nil
}

// Ensure accountService implements AccountService at compile time.
var _ AccountService = (*accountService)(nil)
