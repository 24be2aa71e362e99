package handlers

import (
	"net/http"

	"github.com/SriramAtmakuri/QueryCraft/internal/responses"
	"github.com/SriramAtmakuri/QueryCraft/internal/sqlformat"
	"github.com/SriramAtmakuri/QueryCraft/internal/sqllint"

	"github.com/gin-gonic/gin"
)

// ToolsHandler serves the local SQL utilities. None of these endpoints
// touch the provider.
type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

func (h *ToolsHandler) LintSQL(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	issues := sqllint.Lint(req.SQL)

	responses.Success(c, http.StatusOK, gin.H{"issues": issues}, "SQL linted successfully")
}

func (h *ToolsHandler) FormatSQL(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"formatted": sqlformat.Format(req.SQL)}, "SQL formatted successfully")
}

func (h *ToolsHandler) DiffSQL(c *gin.Context) {
	var req struct {
		Original string `json:"original" binding:"required"`
		Modified string `json:"modified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Both original and modified SQL are required")
		return
	}

	diff := sqlformat.Diff(sqlformat.Format(req.Original), sqlformat.Format(req.Modified))

	responses.Success(c, http.StatusOK, gin.H{"diff": diff}, "SQL diffed successfully")
}
