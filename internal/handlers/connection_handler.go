package handlers

import (
	"errors"
	"net/http"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"
	"github.com/SriramAtmakuri/QueryCraft/internal/responses"
	"github.com/SriramAtmakuri/QueryCraft/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

func (h *ConnectionHandler) Create(c *gin.Context) {
	var req struct {
		Name             string `json:"name"              binding:"required"`
		ConnectionType   string `json:"connection_type"   binding:"required"`
		ConnectionString string `json:"connection_string" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Name, type and connection string are required")
		return
	}

	conn := &models.DatabaseConnection{
		UserID:           userID(c),
		Name:             req.Name,
		ConnectionType:   req.ConnectionType,
		ConnectionString: req.ConnectionString,
	}
	if err := h.connectionService.Create(conn); err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not save connection")
		return
	}

	responses.Success(c, http.StatusCreated, conn, "Connection saved successfully")
}

func (h *ConnectionHandler) List(c *gin.Context) {
	connections, err := h.connectionService.List(userID(c))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not list connections")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"connections": connections}, "Connections loaded successfully")
}

func (h *ConnectionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid connection id")
		return
	}

	if err := h.connectionService.Delete(id, userID(c)); err != nil {
		if errors.Is(err, services.ErrConnectionNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Connection not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not delete connection")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Connection deleted successfully")
}
