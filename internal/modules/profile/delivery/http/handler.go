package handler

import (
	"net/http"

	"github.com/alumninet/alumninet/internal/middleware"
	profileDto "github.com/alumninet/alumninet/internal/modules/profile/dto"
	profile "github.com/alumninet/alumninet/internal/modules/profile/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	res, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.profileService.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	var avatar *profileDto.AvatarFile
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar"})
			return
		}
		defer file.Close()

		avatar = &profileDto.AvatarFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		}
	}

	res, err := h.profileService.UpdateProfile(c.Request.Context(), actor, input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}
