package routes

import (
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"
	"github.com/SriramAtmakuri/QueryCraft/internal/middlewares"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/gin-gonic/gin"
)

type ConnectionRoutes struct {
	handler   *handlers.ConnectionHandler
	redisRepo *repositories.RedisRepository
}

func NewConnectionRoutes(handler *handlers.ConnectionHandler, redisRepo *repositories.RedisRepository) *ConnectionRoutes {
	return &ConnectionRoutes{handler: handler, redisRepo: redisRepo}
}

func (r *ConnectionRoutes) RegisterRoutes(router *gin.RouterGroup) {
	connections := router.Group("/connections")
	connections.Use(middlewares.Authenticate(r.redisRepo))
	{
		connections.POST("", r.handler.Create)
		connections.GET("", r.handler.List)
		connections.DELETE("/:id", r.handler.Delete)
	}
}
