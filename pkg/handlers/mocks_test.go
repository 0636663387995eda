package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/models"
	"github.com/projecthub-io/projecthub/pkg/services"
)

// noopScope stands in for the database session middleware in handler tests.
func noopScope(next http.HandlerFunc) http.HandlerFunc {
	return next
}

// mockAccountService implements services.AccountService with function fields.
type mockAccountService struct {
	registerFn     func(ctx context.Context, params services.RegisterParams) (*models.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*services.LoginResult, error)
}

func (m *mockAccountService) Register(ctx context.Context, params services.RegisterParams) (*models.User, error) {
	return m.registerFn(ctx, params)
}

func (m *mockAccountService) Authenticate(ctx context.Context, username, password string) (*services.LoginResult, error) {
	return m.authenticateFn(ctx, username, password)
}

// mockProjectService implements services.ProjectService with function fields.
type mockProjectService struct {
	createFn func(ctx context.Context, params services.ProjectCreateParams, principal *models.User) (*models.Project, error)
	listFn   func(ctx context.Context) ([]*models.Project, error)
	getFn    func(ctx context.Context, id int64) (*models.Project, error)
	updateFn func(ctx context.Context, id int64, params services.ProjectUpdateParams, principal *models.User) (*models.Project, error)
	deleteFn func(ctx context.Context, id int64, principal *models.User) error
}

func (m *mockProjectService) Create(ctx context.Context, params services.ProjectCreateParams, principal *models.User) (*models.Project, error) {
	return m.createFn(ctx, params, principal)
}

func (m *mockProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return m.listFn(ctx)
}

func (m *mockProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return m.getFn(ctx, id)
}

func (m *mockProjectService) Update(ctx context.Context, id int64, params services.ProjectUpdateParams, principal *models.User) (*models.Project, error) {
	return m.updateFn(ctx, id, params, principal)
}

func (m *mockProjectService) Delete(ctx context.Context, id int64, principal *models.User) error {
	return m.deleteFn(ctx, id, principal)
}

// mockUserService implements services.UserService with function fields.
type mockUserService struct {
	listFn func(ctx context.Context) ([]*models.User, error)
	getFn  func(ctx context.Context, id int64) (*models.User, error)
}

func (m *mockUserService) List(ctx context.Context) ([]*models.User, error) {
	return m.listFn(ctx)
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return m.getFn(ctx, id)
}

// stubUserLoader backs the guard with a fixed principal set.
type stubUserLoader struct {
	users map[int64]*models.User
}

func (s *stubUserLoader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// Fixed principals used across handler tests.
var (
	guardAdmin = &models.User{ID: 1, Username: "root", Role: models.RoleAdmin, IsActive: true}
	guardUser  = &models.User{ID: 2, Username: "alice", Role: models.RoleUser, IsActive: true}
)

// newTestGuard builds a real authorization guard over stub storage, so
// route-level tests exercise the exact middleware chain main.go wires up.
func newTestGuard() (*auth.Middleware, *auth.TokenService) {
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	loader := &stubUserLoader{users: map[int64]*models.User{
		guardAdmin.ID: guardAdmin,
		guardUser.ID:  guardUser,
	}}
	guard := auth.NewMiddleware(tokens, loader, auth.NewPermissionTable(), zap.NewNop())
	return guard, tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenService, userID int64) string {
	t.Helper()
	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + token
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}
