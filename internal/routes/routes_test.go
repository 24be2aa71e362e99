package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"

	"github.com/gin-gonic/gin"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	RegisterRoutes(router, nil,
		handlers.NewAuthHandler(nil),
		handlers.NewQueryHandler(nil),
		handlers.NewSchemaHandler(nil),
		handlers.NewToolsHandler(),
		handlers.NewShareHandler(),
		handlers.NewSavedQueryHandler(nil),
		handlers.NewConnectionHandler(nil))

	for _, path := range []string{"/health", "/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}

		var body struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decoding body: %v", path, err)
		}
		if body.Status != "ok" {
			t.Errorf("%s: status = %q", path, body.Status)
		}
		if body.Timestamp == "" {
			t.Errorf("%s: timestamp missing", path)
		}
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	RegisterRoutes(router, nil,
		handlers.NewAuthHandler(nil),
		handlers.NewQueryHandler(nil),
		handlers.NewSchemaHandler(nil),
		handlers.NewToolsHandler(),
		handlers.NewShareHandler(),
		handlers.NewSavedQueryHandler(nil),
		handlers.NewConnectionHandler(nil))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/saved-queries"},
		{http.MethodGet, "/api/v1/connections"},
		{http.MethodGet, "/api/v1/history"},
	}

	for _, tt := range paths {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tt.method, tt.path, w.Code)
		}
	}
}
