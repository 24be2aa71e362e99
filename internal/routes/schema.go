package routes

import (
	"github.com/SriramAtmakuri/QueryCraft/internal/handlers"

	"github.com/gin-gonic/gin"
)

type SchemaRoutes struct {
	handler *handlers.SchemaHandler
}

func NewSchemaRoutes(handler *handlers.SchemaHandler) *SchemaRoutes {
	return &SchemaRoutes{handler: handler}
}

func (r *SchemaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-schema", r.handler.GenerateSchema)
	router.POST("/image-to-schema", r.handler.ImageToSchema)
	router.POST("/parse-schema", r.handler.ParseSchema)
}
