package handlers

import (
	"net/http"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
	"github.com/SriramAtmakuri/QueryCraft/internal/responses"
	"github.com/SriramAtmakuri/QueryCraft/internal/services"

	"github.com/gin-gonic/gin"
)

type SchemaHandler struct {
	schemaService *services.SchemaService
}

func NewSchemaHandler(schemaService *services.SchemaService) *SchemaHandler {
	return &SchemaHandler{schemaService: schemaService}
}

func (h *SchemaHandler) GenerateSchema(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
		Dialect     string `json:"dialect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A description is required")
		return
	}

	result, err := h.schemaService.GenerateSchema(c.Request.Context(), req.Description, req.Dialect)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not generate schema")
		return
	}

	responses.Success(c, http.StatusOK, result, "Schema generated successfully")
}

func (h *SchemaHandler) ImageToSchema(c *gin.Context) {
	// A single image is the common case; the images array covers
	// multi-page diagrams. Mime type defaults to image/png downstream.
	var req struct {
		Image    string `json:"image"`
		MimeType string `json:"mime_type"`
		Images   []struct {
			MimeType string `json:"mime_type"`
			Data     string `json:"data" binding:"required"`
		} `json:"images"`
		Dialect string `json:"dialect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A base64 image is required")
		return
	}

	var parts []llm.ImagePart
	if req.Image != "" {
		parts = append(parts, llm.ImagePart{MimeType: req.MimeType, Base64: req.Image})
	}
	for _, img := range req.Images {
		parts = append(parts, llm.ImagePart{MimeType: img.MimeType, Base64: img.Data})
	}
	if len(parts) == 0 {
		responses.Fail(c, http.StatusBadRequest, nil, "A base64 image is required")
		return
	}

	result, err := h.schemaService.ImageToSchema(c.Request.Context(), parts, req.Dialect)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not extract schema from image")
		return
	}

	responses.Success(c, http.StatusOK, result, "Schema extracted successfully")
}

func (h *SchemaHandler) ParseSchema(c *gin.Context) {
	var req struct {
		Schema string `json:"schema" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A schema document is required")
		return
	}

	parsed := h.schemaService.ParseSchema(req.Schema)

	responses.Success(c, http.StatusOK, parsed, "Schema parsed successfully")
}
