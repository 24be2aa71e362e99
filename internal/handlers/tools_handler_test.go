package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SriramAtmakuri/QueryCraft/internal/responses"

	"github.com/gin-gonic/gin"
)

func toolsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	tools := NewToolsHandler()
	share := NewShareHandler()

	router.POST("/lint-sql", tools.LintSQL)
	router.POST("/format-sql", tools.FormatSQL)
	router.POST("/diff-sql", tools.DiffSQL)
	router.POST("/share", share.CreateShare)
	router.GET("/share/:token", share.ResolveShare)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) responses.APIResponse {
	t.Helper()
	var envelope responses.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return envelope
}

func TestLintSQLEndpoint(t *testing.T) {
	router := toolsRouter()

	w := postJSON(t, router, "/lint-sql", `{"sql":"DELETE FROM users"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	envelope := decodeEnvelope(t, w)
	data, _ := envelope.Data.(map[string]any)
	issues, _ := data["issues"].([]any)
	if len(issues) == 0 {
		t.Fatal("expected at least one lint issue for DELETE without WHERE")
	}
}

func TestLintSQLRequiresBody(t *testing.T) {
	router := toolsRouter()

	w := postJSON(t, router, "/lint-sql", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestFormatSQLEndpoint(t *testing.T) {
	router := toolsRouter()

	w := postJSON(t, router, "/format-sql", `{"sql":"select id, name from users where id = 1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	envelope := decodeEnvelope(t, w)
	data, _ := envelope.Data.(map[string]any)
	formatted, _ := data["formatted"].(string)
	if !strings.Contains(formatted, "SELECT") || !strings.Contains(formatted, "\nFROM") {
		t.Errorf("formatted = %q", formatted)
	}
}

func TestDiffSQLEndpoint(t *testing.T) {
	router := toolsRouter()

	w := postJSON(t, router, "/diff-sql", `{"original":"SELECT id FROM users","modified":"SELECT id, name FROM users"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	envelope := decodeEnvelope(t, w)
	data, _ := envelope.Data.(map[string]any)
	if _, ok := data["diff"].([]any); !ok {
		t.Fatalf("diff missing from response: %s", w.Body.String())
	}
}

func TestShareRoundTripThroughHandlers(t *testing.T) {
	router := toolsRouter()

	w := postJSON(t, router, "/share", `{"query":"all users","sql":"SELECT * FROM users","dialect":"postgresql"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	envelope := decodeEnvelope(t, w)
	data, _ := envelope.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("missing share token")
	}

	req := httptest.NewRequest(http.MethodGet, "/share/"+token, nil)
	resolved := httptest.NewRecorder()
	router.ServeHTTP(resolved, req)
	if resolved.Code != http.StatusOK {
		t.Fatalf("resolve status = %d, body = %s", resolved.Code, resolved.Body.String())
	}

	payload, _ := decodeEnvelope(t, resolved).Data.(map[string]any)
	if payload["sql"] != "SELECT * FROM users" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestShareRejectsGarbageToken(t *testing.T) {
	router := toolsRouter()

	req := httptest.NewRequest(http.MethodGet, "/share/not-a-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}
