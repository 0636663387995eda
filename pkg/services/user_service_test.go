package services

import (
	"context"
	"errors"
	"testing"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/models"
)

func TestUserService(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()

	for _, username := range []string{"alice", "bob"} {
		if err := repo.Create(ctx, &models.User{Username: username, Role: models.RoleUser, IsActive: true}); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	svc := NewUserService(repo)

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	got, err := svc.Get(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected alice, got %q", got.Username)
	}

	if _, err := svc.Get(ctx, 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
