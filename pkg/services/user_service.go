package services

import (
	"context"

	"github.com/projecthub-io/projecthub/pkg/models"
	"github.com/projecthub-io/projecthub/pkg/repositories"
)

// UserService exposes the read-only user directory.
type UserService interface {
	// List returns every account ordered by id.
	List(ctx context.Context) ([]*models.User, error)

	// Get returns the account or apperrors.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.User, error)
}

// userService implements UserService.
type userService struct {
	users repositories.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Ensure userService implements UserService at compile time.
var _ UserService = (*userService)(nil)
