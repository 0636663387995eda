package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/config"
	"github.com/projecthub-io/projecthub/pkg/database"
)

// HealthHandler handles the root, health and database probe endpoints.
type HealthHandler struct {
	cfg    *config.Config
	db     *database.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, db *database.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /db-test", h.DBTest)
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the projecthub API",
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DBTest handles GET /db-test. It is a readiness probe against the
// connection pool.
func (h *HealthHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Database probe failed", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "database_error", "Database connection failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{
		"status": "Database connection successful",
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
