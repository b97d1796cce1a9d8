package handler

import (
	"net/http"

	"github.com/alumninet/alumninet/internal/middleware"
	userDto "github.com/alumninet/alumninet/internal/modules/user/dto"
	user "github.com/alumninet/alumninet/internal/modules/user/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService user.AdminService
}

func NewAdminHandler(adminService user.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input userDto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.adminService.CreateUser(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseCreated(c, created)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query userDto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.adminService.ListUsers(c.Request.Context(), actor, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input userDto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.adminService.UpdateUser(c.Request.Context(), actor, userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, updated)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.adminService.DeactivateUser(c.Request.Context(), actor, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "user deactivated"})
}
