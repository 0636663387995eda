package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/apperrors"
	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/services"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest is the request body for a partial project update.
// Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProjectsHandler handles project CRUD requests.
type ProjectsHandler struct {
	projects services.ProjectService
	logger   *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projects services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projects: projects,
		logger:   logger,
	}
}

// RegisterRoutes registers the project routes on the given mux. The scope
// middleware runs outermost so the guard can load the principal on the
// request's database session. Creation requires the CREATE capability
// (admin only); reads require READ (both roles); the admin-or-owner rule
// for update and delete lives in the service.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, scope ScopeMiddleware, guard *auth.Middleware) {
	mux.HandleFunc("POST /project/projects", scope(guard.RequirePermission(auth.PermissionCreate)(h.Create)))
	mux.HandleFunc("GET /project/projects", scope(guard.RequirePermission(auth.PermissionRead)(h.List)))
	mux.HandleFunc("GET /project/projects/{id}", scope(guard.RequirePermission(auth.PermissionRead)(h.Get)))
	mux.HandleFunc("PUT /project/projects/{id}", scope(guard.RequireUser(h.Update)))
	mux.HandleFunc("DELETE /project/projects/{id}", scope(guard.RequireUser(h.Delete)))
}

// Create handles POST /project/projects. The route's permission gate has
// already restricted it to admins; the created project is owned by the
// caller.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetUser(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Could not validate credentials"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Project name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projects.Create(r.Context(), services.ProjectCreateParams{
		Name:        req.Name,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create project"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, newProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /project/projects. Every authenticated active user sees
// all projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list projects"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, newProjectResponse(project))
	}

	if err := WriteJSON(w, http.StatusOK, responses); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /project/projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseProjectID(w, r)
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.writeProjectError(w, id, err, "Failed to get project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, newProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /project/projects/{id}. Admin or owner only; partial
// bodies leave absent fields unchanged.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetUser(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Could not validate credentials"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	id, ok := h.parseProjectID(w, r)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projects.Update(r.Context(), id, services.ProjectUpdateParams{
		Name:        req.Name,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.writeProjectError(w, id, err, "Failed to update project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, newProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /project/projects/{id}. Admin or owner only;
// deletion is immediate and permanent.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetUser(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Could not validate credentials"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	id, ok := h.parseProjectID(w, r)
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), id, principal); err != nil {
		h.writeProjectError(w, id, err, "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseProjectID reads the {id} path value. On failure it writes the
// response and returns false.
func (h *ProjectsHandler) parseProjectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_project_id", "Invalid project ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}

// writeProjectError maps service errors for single-project operations.
func (h *ProjectsHandler) writeProjectError(w http.ResponseWriter, id int64, err error, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Project not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrForbidden):
		if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Not enough permissions for this project"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error(logMsg,
			zap.Int64("project_id", id),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", logMsg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
