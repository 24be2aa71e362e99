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

type SavedQueryHandler struct {
	savedQueryService *services.SavedQueryService
}

func NewSavedQueryHandler(savedQueryService *services.SavedQueryService) *SavedQueryHandler {
	return &SavedQueryHandler{savedQueryService: savedQueryService}
}

func (h *SavedQueryHandler) Create(c *gin.Context) {
	var req struct {
		Name                string  `json:"name" binding:"required"`
		SQL                 string  `json:"sql"  binding:"required"`
		Dialect             string  `json:"dialect"`
		VisualizationConfig *string `json:"visualization_config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A name and SQL query are required")
		return
	}

	query := &models.SavedQuery{
		UserID:              userID(c),
		Name:                req.Name,
		SQL:                 req.SQL,
		Dialect:             req.Dialect,
		VisualizationConfig: req.VisualizationConfig,
	}
	if err := h.savedQueryService.Create(query); err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not save query")
		return
	}

	responses.Success(c, http.StatusCreated, query, "Query saved successfully")
}

func (h *SavedQueryHandler) List(c *gin.Context) {
	queries, err := h.savedQueryService.List(userID(c))
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Could not list saved queries")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"queries": queries}, "Saved queries loaded successfully")
}

func (h *SavedQueryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid query id")
		return
	}

	query, err := h.savedQueryService.Get(id, userID(c))
	if err != nil {
		if errors.Is(err, services.ErrSavedQueryNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Saved query not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not load saved query")
		return
	}

	responses.Success(c, http.StatusOK, query, "Saved query loaded successfully")
}

func (h *SavedQueryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid query id")
		return
	}

	var req struct {
		Name                string  `json:"name" binding:"required"`
		SQL                 string  `json:"sql"  binding:"required"`
		Dialect             string  `json:"dialect"`
		VisualizationConfig *string `json:"visualization_config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A name and SQL query are required")
		return
	}

	query := &models.SavedQuery{
		ID:                  id,
		UserID:              userID(c),
		Name:                req.Name,
		SQL:                 req.SQL,
		Dialect:             req.Dialect,
		VisualizationConfig: req.VisualizationConfig,
	}
	if err := h.savedQueryService.Update(query); err != nil {
		if errors.Is(err, services.ErrSavedQueryNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Saved query not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not update saved query")
		return
	}

	responses.Success(c, http.StatusOK, query, "Saved query updated successfully")
}

func (h *SavedQueryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid query id")
		return
	}

	if err := h.savedQueryService.Delete(id, userID(c)); err != nil {
		if errors.Is(err, services.ErrSavedQueryNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Saved query not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not delete saved query")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Saved query deleted successfully")
}
