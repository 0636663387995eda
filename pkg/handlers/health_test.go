package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/projecthub-io/projecthub/pkg/config"
)

func newHealthMux() *http.ServeMux {
	mux := http.NewServeMux()
	NewHealthHandler(&config.Config{}, nil, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestHealthHandler_Root(t *testing.T) {
	mux := newHealthMux()

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["message"] != "Welcome to the projecthub API" {
		t.Errorf("unexpected message: %q", body["message"])
	}
}

func TestHealthHandler_Health(t *testing.T) {
	mux := newHealthMux()

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected status: %q", body["status"])
	}
}

// The root pattern is exact: unknown paths are not swallowed by it.
func TestHealthHandler_RootIsExact(t *testing.T) {
	mux := newHealthMux()

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", w.Code)
	}
}
