package handlers

import (
	"net/http"

	"github.com/SriramAtmakuri/QueryCraft/internal/responses"
	"github.com/SriramAtmakuri/QueryCraft/internal/utils"

	"github.com/gin-gonic/gin"
)

// ShareHandler encodes and decodes self-contained share tokens. Nothing is
// stored server side; the token is the payload.
type ShareHandler struct{}

func NewShareHandler() *ShareHandler {
	return &ShareHandler{}
}

func (h *ShareHandler) CreateShare(c *gin.Context) {
	var req struct {
		Query   string `json:"query"`
		SQL     string `json:"sql" binding:"required"`
		Dialect string `json:"dialect"`
		Schema  string `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "A SQL query is required")
		return
	}

	token, err := utils.EncodeShare(utils.SharePayload{
		Query:   req.Query,
		SQL:     req.SQL,
		Dialect: req.Dialect,
		Schema:  req.Schema,
	})
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Could not create share token")
		return
	}

	responses.Success(c, http.StatusCreated, gin.H{"token": token}, "Share token created successfully")
}

func (h *ShareHandler) ResolveShare(c *gin.Context) {
	payload, err := utils.DecodeShare(c.Param("token"))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Share token is invalid")
		return
	}

	responses.Success(c, http.StatusOK, payload, "Share token resolved successfully")
}
