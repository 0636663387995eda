package services

import (
	"context"
	"time"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/models"
)

// memUserRepo is an in-memory UserRepository for unit tests.
type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

// memProjectRepo is an in-memory ProjectRepository for unit tests. It counts
// mutations so tests can assert a denied call never reached storage.
type memProjectRepo struct {
	projects map[int64]*models.Project
	nextID   int64
	updates  int
	deletes  int
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[int64]*models.Project), nextID: 1}
}

func (r *memProjectRepo) Create(_ context.Context, project *models.Project) error {
	project.ID = r.nextID
	r.nextID++
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *memProjectRepo) Get(_ context.Context, id int64) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (r *memProjectRepo) List(_ context.Context) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(r.projects))
	for id := int64(1); id < r.nextID; id++ {
		if project, ok := r.projects[id]; ok {
			copied := *project
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.updates++
	project.UpdatedAt = time.Now()
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	r.deletes++
	delete(r.projects, id)
	return nil
}
