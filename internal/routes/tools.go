package routes

import (
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"

	"github.com/gin-gonic/gin"
)

type ToolsRoutes struct {
	tools *handlers.ToolsHandler
	share *handlers.ShareHandler
}

func NewToolsRoutes(tools *handlers.ToolsHandler, share *handlers.ShareHandler) *ToolsRoutes {
	return &ToolsRoutes{tools: tools, share: share}
}

func (r *ToolsRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/lint-sql", r.tools.LintSQL)
	router.POST("/format-sql", r.tools.FormatSQL)
	router.POST("/diff-sql", r.tools.DiffSQL)

	router.POST("/share", r.share.CreateShare)
	router.GET("/share/:token", r.share.ResolveShare)
}
