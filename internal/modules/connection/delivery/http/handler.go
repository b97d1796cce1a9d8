package handler

import (
	"net/http"

	"github.com/alumninet/alumninet/internal/middleware"
	connDto "github.com/alumninet/alumninet/internal/modules/connection/dto"
	connection "github.com/alumninet/alumninet/internal/modules/connection/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	connectionService connection.ConnectionService
}

func NewConnectionHandler(connectionService connection.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
	}
}

func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input connDto.SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	toUserID, err := uuid.Parse(input.ToUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	request, err := h.connectionService.SendRequest(c.Request.Context(), actor, toUserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseCreated(c, request)
}

func (h *ConnectionHandler) AcceptRequest(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.connectionService.AcceptRequest(c.Request.Context(), actor, requestID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "connection request accepted"})
}

func (h *ConnectionHandler) RejectRequest(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.connectionService.RejectRequest(c.Request.Context(), actor, requestID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "connection request rejected"})
}

func (h *ConnectionHandler) RemoveConnection(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	otherUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.connectionService.RemoveConnection(c.Request.Context(), actor, otherUserID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "connection removed"})
}

func (h *ConnectionHandler) CheckStatus(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	otherUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	status, err := h.connectionService.CheckStatus(c.Request.Context(), actor, otherUserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, status)
}

func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query connDto.ListConnectionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.connectionService.ListConnections(c.Request.Context(), actor, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}

func (h *ConnectionHandler) ListRequests(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query connDto.ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	requests, err := h.connectionService.ListRequests(c.Request.Context(), actor, query.Direction)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": requests})
}

func (h *ConnectionHandler) Suggestions(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query connDto.SuggestionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	suggestions, err := h.connectionService.Suggestions(c.Request.Context(), actor, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": suggestions})
}
