package handlers

import (
	"net/http"
	"testing"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
	"github.com/SriramAtmakuri/QueryCraft/internal/services"

	"github.com/gin-gonic/gin"
)

func schemaRouter(completer llm.Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewSchemaHandler(services.NewSchemaService(completer))
	router.POST("/image-to-schema", handler.ImageToSchema)
	router.POST("/parse-schema", handler.ParseSchema)
	return router
}

func TestImageToSchemaAcceptsSingleImage(t *testing.T) {
	router := schemaRouter(&cannedCompleter{reply: "CREATE TABLE users (id INT PRIMARY KEY);"})

	w := postJSON(t, router, "/image-to-schema", `{"image":"aGVsbG8="}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data, _ := decodeEnvelope(t, w).Data.(map[string]any)
	if data["schema"] != "CREATE TABLE users (id INT PRIMARY KEY);" {
		t.Errorf("data = %+v", data)
	}
}

func TestImageToSchemaAcceptsImageList(t *testing.T) {
	router := schemaRouter(&cannedCompleter{reply: "CREATE TABLE t (id INT);"})

	w := postJSON(t, router, "/image-to-schema", `{"images":[{"mime_type":"image/jpeg","data":"aGVsbG8="}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestImageToSchemaRequiresAnImage(t *testing.T) {
	router := schemaRouter(&cannedCompleter{reply: "irrelevant"})

	w := postJSON(t, router, "/image-to-schema", `{"dialect":"mysql"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
