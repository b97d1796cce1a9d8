package handler

import (
	"net/http"

	userDto "github.com/alumninet/alumninet/internal/modules/user/dto"
	user "github.com/alumninet/alumninet/internal/modules/user/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService user.AuthService
}

func NewAuthHandler(authService user.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input userDto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}
