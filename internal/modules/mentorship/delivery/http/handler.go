package handler

import (
	"net/http"

	"github.com/alumninet/alumninet/internal/middleware"
	mentorDto "github.com/alumninet/alumninet/internal/modules/mentorship/dto"
	mentorship "github.com/alumninet/alumninet/internal/modules/mentorship/service"
	"github.com/alumninet/alumninet/pkg/response"
	"github.com/alumninet/alumninet/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MentorshipHandler struct {
	mentorshipService mentorship.MentorshipService
}

func NewMentorshipHandler(mentorshipService mentorship.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{
		mentorshipService: mentorshipService,
	}
}

// ToggleMentor flips the caller's mentor flag. The body carries the profile
// fields used when enabling; it is ignored when disabling.
func (h *MentorshipHandler) ToggleMentor(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input mentorDto.ToggleMentorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	mentor, err := h.mentorshipService.ToggleMentor(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, mentor)
}

func (h *MentorshipHandler) RequestMentorship(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mentorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mentor id"})
		return
	}

	var input mentorDto.RequestMentorshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.mentorshipService.RequestMentorship(c.Request.Context(), actor, mentorID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseCreated(c, request)
}

func (h *MentorshipHandler) AcceptRequest(c *gin.Context) {
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

	if err := h.mentorshipService.AcceptRequest(c.Request.Context(), actor, requestID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "mentorship request accepted"})
}

func (h *MentorshipHandler) RejectRequest(c *gin.Context) {
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

	if err := h.mentorshipService.RejectRequest(c.Request.Context(), actor, requestID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"message": "mentorship request rejected"})
}

func (h *MentorshipHandler) ListMentors(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query mentorDto.ListMentorsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	mentors, err := h.mentorshipService.ListMentors(c.Request.Context(), actor, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": mentors})
}

func (h *MentorshipHandler) ListRequests(c *gin.Context) {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query mentorDto.ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	requests, err := h.mentorshipService.ListRequests(c.Request.Context(), actor, query.Direction)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseOK(c, gin.H{"data": requests})
}
