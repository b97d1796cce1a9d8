package handler

import (
	"net/http"

	"github.com/alumninet/alumninet/internal/middleware"
	universityDto "github.com/alumninet/alumninet/internal/modules/university/dto"
	university "github.com/alumninet/alumninet/internal/modules/university/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UniversityHandler struct {
	universityService university.UniversityService
}

func NewUniversityHandler(universityService university.UniversityService) *UniversityHandler {
	return &UniversityHandler{
		universityService: universityService,
	}
}

func (h *UniversityHandler) Create(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input universityDto.CreateUniversityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.universityService.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseCreated(c, created)
}

func (h *UniversityHandler) Update(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "university id required"})
		return
	}

	var input universityDto.UpdateUniversityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.universityService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, updated)
}

func (h *UniversityHandler) List(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	universities, err := h.universityService.List(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": universities})
}

// GetOwn returns the university the authenticated user belongs to.
func (h *UniversityHandler) GetOwn(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.universityService.GetOwn(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, res)
}
