package services

import (
	"context"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/models"
	"github.com/projecthub-io/projecthub/pkg/repositories"
)

// ProjectCreateParams carries the fields accepted at project creation.
type ProjectCreateParams struct {
	Name        string
	Description *string
}

// ProjectUpdateParams is a partial update: nil fields are left unchanged.
type ProjectUpdateParams struct {
	Name        *string
	Description *string
}

// ProjectService implements project CRUD with the ownership rules layered
// on top of the coarse role capabilities.
type ProjectService interface {
	// Create persists a new project owned by the principal. The guard has
	// already restricted the route to principals holding CREATE.
	Create(ctx context.Context, params ProjectCreateParams, principal *models.User) (*models.Project, error)

	// List returns every project; visibility is not scoped per caller.
	List(ctx context.Context) ([]*models.Project, error)

	// Get returns the project or apperrors.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Project, error)

	// Update applies the provided fields and always refreshes updated_at,
	// whether or not anything changed. Principals need the UPDATE
	// capability or ownership of the project.
	Update(ctx context.Context, id int64, params ProjectUpdateParams, principal *models.User) (*models.Project, error)

	// Delete removes the project immediately and permanently. Same
	// authorization rule as Update.
	Delete(ctx context.Context, id int64, principal *models.User) error
}

// projectService implements ProjectService.
type projectService struct {
	projects repositories.ProjectRepository
	perms    *auth.PermissionTable
}

// NewProjectService creates a new project service.
func NewProjectService(projects repositories.ProjectRepository, perms *auth.PermissionTable) ProjectService {
	return &projectService{
		projects: projects,
		perms:    perms,
	}
}

// Create persists a new project owned by the principal.
func (s *projectService) Create(ctx context.Context, params ProjectCreateParams, principal *models.User) (*models.Project, error) {
	project := &models.Project{
		Name:        params.Name,
		Description: params.Description,
		OwnerID:     principal.ID,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects.
func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projects.List(ctx)
}

// Get returns a project by id.
func (s *projectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.projects.Get(ctx, id)
}

// Update applies a partial update to a project.
func (s *projectService) Update(ctx context.Context, id int64, params ProjectUpdateParams, principal *models.User) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canModify(principal, project, auth.PermissionUpdate) {
		return nil, apperrors.ErrForbidden
	}

	if params.Name != nil {
		project.Name = *params.Name
	}
	if params.Description != nil {
		project.Description = params.Description
	}

	// Update refreshes updated_at even when no field was provided.
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project.
func (s *projectService) Delete(ctx context.Context, id int64, principal *models.User) error {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	if !s.canModify(principal, project, auth.PermissionDelete) {
		return apperrors.ErrForbidden
	}

	return s.projects.Delete(ctx, id)
}

// canModify is the two-layer mutation gate: the coarse role capability from
// the permission table, or ownership of the specific project.
func (s *projectService) canModify(principal *models.User, project *models.Project, perm auth.Permission) bool {
	if s.perms.Has(principal.Role, perm) {
		return true
	}
	return project.OwnerID == principal.ID
}

// Ensure projectService implements ProjectService at compile time.
var _ ProjectService = (*projectService)(nil)
