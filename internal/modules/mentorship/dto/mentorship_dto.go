package dto

import (
	"time"

	connDto "github.com/alumninet/alumninet/internal/modules/connection/dto"
	"github.com/google/uuid"
)

type ToggleMentorInput struct {
	Expertise       []string `json:"expertise" binding:"omitempty,max=10,dive,max=50"`
	Availability    string   `json:"availability" binding:"omitempty,max=100"`
	YearsExperience int      `json:"years_experience" binding:"omitempty,min=0,max=80"`
}

type RequestMentorshipInput struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type ListMentorsQuery struct {
	Expertise       string `form:"expertise"`
	Availability    string `form:"availability"`
	Search          string `form:"search"`
	UniversityID    string `form:"university_id"`
	AllUniversities bool   `form:"all_universities"`
	Page            int    `form:"page"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ListRequestsQuery struct {
	Direction string `form:"direction" binding:"omitempty,oneof=incoming outgoing"`
}

// MentorResponse carries the decorative match_score alongside the mentor
// card. The score is computed per request and never persisted.
type MentorResponse struct {
	ID              uuid.UUID        `json:"id"`
	User            connDto.UserCard `json:"user"`
	Expertise       []string         `json:"expertise"`
	Availability    string           `json:"availability"`
	YearsExperience int              `json:"years_experience"`
	MenteesCount    int              `json:"mentees_count"`
	MatchScore      float64          `json:"match_score"`
}

type MentorshipRequestResponse struct {
	ID        uuid.UUID        `json:"id"`
	MentorID  uuid.UUID        `json:"mentor_id"`
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	User      connDto.UserCard `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
}
