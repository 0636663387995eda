//go:build integration

package repositories

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/database"
	"github.com/projecthub-io/projecthub/pkg/models"
	"github.com/projecthub-io/projecthub/pkg/testhelpers"
)

// scopedContext returns a context carrying a fresh per-request database
// session against the shared test container, with both tables emptied.
func scopedContext(t *testing.T) context.Context {
	t.Helper()

	tdb := testhelpers.GetTestDB(t)

	scope, err := tdb.DB.AcquireScope(context.Background())
	if err != nil {
		t.Fatalf("failed to acquire scope: %v", err)
	}
	t.Cleanup(scope.Close)

	ctx := database.SetRequestScope(context.Background(), scope)

	if _, err := scope.Conn.Exec(ctx, "TRUNCATE projects, users RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	return ctx
}

// seedUser inserts an account directly through the repository.
func seedUser(t *testing.T, ctx context.Context, username string) *models.User {
	t.Helper()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hashed, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:       username,
		Role:           models.RoleUser,
		IsActive:       true,
		HashedPassword: hashed,
	}
	if err := NewUserRepository().Create(ctx, user); err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return user
}
