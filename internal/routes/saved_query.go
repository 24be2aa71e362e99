package routes

import (
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"
	"github.com/SriramAtmakuri/QueryCraft/internal/middlewares"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/gin-gonic/gin"
)

type SavedQueryRoutes struct {
	handler   *handlers.SavedQueryHandler
	redisRepo *repositories.RedisRepository
}

func NewSavedQueryRoutes(handler *handlers.SavedQueryHandler, redisRepo *repositories.RedisRepository) *SavedQueryRoutes {
	return &SavedQueryRoutes{handler: handler, redisRepo: redisRepo}
}

func (r *SavedQueryRoutes) RegisterRoutes(router *gin.RouterGroup) {
	queries := router.Group("/saved-queries")
	queries.Use(middlewares.Authenticate(r.redisRepo))
	{
		queries.POST("", r.handler.Create)
		queries.GET("", r.handler.List)
		queries.GET("/:id", r.handler.Get)
		queries.PUT("/:id", r.handler.Update)
		queries.DELETE("/:id", r.handler.Delete)
	}
}
