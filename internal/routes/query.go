package routes

import (
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"
	"github.com/SriramAtmakuri/QueryCraft/internal/middlewares"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/gin-gonic/gin"
)

type QueryRoutes struct {
	handler   *handlers.QueryHandler
	redisRepo *repositories.RedisRepository
}

func NewQueryRoutes(handler *handlers.QueryHandler, redisRepo *repositories.RedisRepository) *QueryRoutes {
	return &QueryRoutes{handler: handler, redisRepo: redisRepo}
}

func (r *QueryRoutes) RegisterRoutes(router *gin.RouterGroup) {
	// Generation works anonymously; history is only recorded for signed
	// in users.
	query := router.Group("/")
	query.Use(middlewares.OptionalAuthenticate(r.redisRepo))
	{
		query.POST("/generate-sql", r.handler.GenerateSQL)
		query.POST("/explain-sql", r.handler.ExplainSQL)
		query.POST("/convert-sql", r.handler.ConvertSQL)
		query.POST("/optimize-sql", r.handler.OptimizeSQL)
		query.POST("/describe-sql", r.handler.DescribeSQL)
		query.POST("/debug-sql", r.handler.DebugSQL)
		query.POST("/mock-results", r.handler.MockResults)
		query.POST("/analyze-performance", r.handler.AnalyzePerformance)
		query.POST("/export-orm", r.handler.ExportORM)
		query.POST("/autocomplete", r.handler.Autocomplete)
		query.POST("/multi-step", r.handler.MultiStep)
	}

	history := router.Group("/history")
	history.Use(middlewares.Authenticate(r.redisRepo))
	{
		history.GET("", r.handler.History)
		history.PATCH("/:id/bookmark", r.handler.Bookmark)
	}
}
