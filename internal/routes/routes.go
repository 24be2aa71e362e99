package routes

import (
	"net/http"
	"time"

	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every feature group under /api/v1.
func RegisterRoutes(
	router *gin.Engine,
	redisRepo *repositories.RedisRepository,
	authHandler *handlers.AuthHandler,
	queryHandler *handlers.QueryHandler,
	schemaHandler *handlers.SchemaHandler,
	toolsHandler *handlers.ToolsHandler,
	shareHandler *handlers.ShareHandler,
	savedQueryHandler *handlers.SavedQueryHandler,
	connectionHandler *handlers.ConnectionHandler,
) {
	api := router.Group("/api/v1")

	NewAuthRoutes(authHandler).RegisterRoutes(api)
	NewQueryRoutes(queryHandler, redisRepo).RegisterRoutes(api)
	NewSchemaRoutes(schemaHandler).RegisterRoutes(api)
	NewToolsRoutes(toolsHandler, shareHandler).RegisterRoutes(api)
	NewSavedQueryRoutes(savedQueryHandler, redisRepo).RegisterRoutes(api)
	NewConnectionRoutes(connectionHandler, redisRepo).RegisterRoutes(api)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	router.GET("/health", health)
	api.GET("/health", health)
}
