package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"
	"github.com/SriramAtmakuri/QueryCraft/internal/responses"
	"github.com/SriramAtmakuri/QueryCraft/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryHandler exposes every provider-backed SQL operation.
type QueryHandler struct {
	queryService *services.QueryService
}

func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// userID pulls the authenticated user out of the context. uuid.Nil means
// the request is anonymous.
func userID(c *gin.Context) uuid.UUID {
	v, exists := c.Get("userId")
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func (h *QueryHandler) GenerateSQL(c *gin.Context) {
	var req struct {
		Prompt  string `json:"prompt" binding:"required"`
		Schema  string `json:"schema"`
		Dialect string `json:"dialect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A prompt is required")
		return
	}

	result, err := h.queryService.GenerateSQL(c.Request.Context(), req.Prompt, req.Schema, req.Dialect)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not generate SQL")
		return
	}

	if id := userID(c); id != uuid.Nil {
		if err := h.queryService.RecordHistory(id, req.Prompt, result.SQL, result.Dialect); err != nil {
			// History is best effort; the generated query still goes back.
			c.Error(err)
		}
	}

	responses.Success(c, http.StatusOK, result, "SQL generated successfully")
}

func (h *QueryHandler) ExplainSQL(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	result, err := h.queryService.ExplainSQL(c.Request.Context(), req.SQL)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not explain SQL")
		return
	}

	responses.Success(c, http.StatusOK, result, "SQL explained successfully")
}

func (h *QueryHandler) ConvertSQL(c *gin.Context) {
	var req struct {
		SQL         string `json:"sql"          binding:"required"`
		FromDialect string `json:"from_dialect"`
		ToDialect   string `json:"to_dialect"   binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query and target dialect are required")
		return
	}

	result, err := h.queryService.ConvertSQL(c.Request.Context(), req.SQL, req.FromDialect, req.ToDialect)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not convert SQL")
		return
	}

	responses.Success(c, http.StatusOK, result, "SQL converted successfully")
}

func (h *QueryHandler) OptimizeSQL(c *gin.Context) {
	var req struct {
		SQL    string `json:"sql" binding:"required"`
		Schema string `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	result, err := h.queryService.OptimizeSQL(c.Request.Context(), req.SQL, req.Schema)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not optimize SQL")
		return
	}

	responses.Success(c, http.StatusOK, result, "SQL optimized successfully")
}

func (h *QueryHandler) DescribeSQL(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	description, err := h.queryService.DescribeSQL(c.Request.Context(), req.SQL)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not describe SQL")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"description": description}, "SQL described successfully")
}

func (h *QueryHandler) DebugSQL(c *gin.Context) {
	var req struct {
		SQL    string `json:"sql"   binding:"required"`
		Error  string `json:"error" binding:"required"`
		Schema string `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query and its error message are required")
		return
	}

	result, err := h.queryService.DebugSQL(c.Request.Context(), req.SQL, req.Error, req.Schema)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not debug SQL")
		return
	}

	responses.Success(c, http.StatusOK, result, "SQL debugged successfully")
}

func (h *QueryHandler) MockResults(c *gin.Context) {
	var req struct {
		SQL      string `json:"sql" binding:"required"`
		RowCount int    `json:"row_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	result, err := h.queryService.MockResults(c.Request.Context(), req.SQL, req.RowCount)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not generate mock results")
		return
	}

	responses.Success(c, http.StatusOK, result, "Mock results generated successfully")
}

func (h *QueryHandler) AnalyzePerformance(c *gin.Context) {
	var req struct {
		SQL    string `json:"sql" binding:"required"`
		Schema string `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	result, err := h.queryService.AnalyzePerformance(c.Request.Context(), req.SQL, req.Schema)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not analyze performance")
		return
	}

	responses.Success(c, http.StatusOK, result, "Performance analyzed successfully")
}

func (h *QueryHandler) ExportORM(c *gin.Context) {
	var req struct {
		SQL    string `json:"sql"    binding:"required"`
		Target string `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query and ORM target are required")
		return
	}

	result, err := h.queryService.ExportORM(c.Request.Context(), req.SQL, req.Target)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTarget) {
			responses.Fail(c, http.StatusBadRequest, err, "Unsupported ORM target")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not export to ORM code")
		return
	}

	responses.Success(c, http.StatusOK, result, "ORM code generated successfully")
}

func (h *QueryHandler) Autocomplete(c *gin.Context) {
	var req struct {
		Partial string `json:"partial" binding:"required"`
		Schema  string `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A partial prompt is required")
		return
	}

	suggestions, err := h.queryService.Autocomplete(c.Request.Context(), req.Partial, req.Schema)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not suggest completions")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"suggestions": suggestions}, "Suggestions generated successfully")
}

func (h *QueryHandler) MultiStep(c *gin.Context) {
	var req struct {
		Prompt  string `json:"prompt" binding:"required"`
		Schema  string `json:"schema"`
		Dialect string `json:"dialect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A prompt is required")
		return
	}

	steps, err := h.queryService.MultiStep(c.Request.Context(), req.Prompt, req.Schema, req.Dialect)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not plan query steps")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"steps": steps}, "Query plan generated successfully")
}

func (h *QueryHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			responses.Fail(c, http.StatusBadRequest, err, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.queryService.History(userID(c), limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not load history")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"history": entries}, "History loaded successfully")
}

func (h *QueryHandler) Bookmark(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid history id")
		return
	}

	var req struct {
		Bookmarked *bool `json:"bookmarked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A bookmarked flag is required")
		return
	}

	if err := h.queryService.SetBookmark(id, userID(c), *req.Bookmarked); err != nil {
		if errors.Is(err, repositories.ErrHistoryNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "History entry not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not update bookmark")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Bookmark updated successfully")
}
