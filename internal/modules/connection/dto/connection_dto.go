package dto

import (
	"time"

	"github.com/alumninet/alumninet/internal/entity"
	commonDto "github.com/alumninet/alumninet/pkg/dto"
	"github.com/google/uuid"
)

type SendRequestInput struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
}

type ListRequestsQuery struct {
	Direction string `form:"direction" binding:"omitempty,oneof=incoming outgoing"`
}

type SuggestionsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type ListConnectionsQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// UserCard is the trimmed user shape embedded in relationship payloads.
type UserCard struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Headline       *string   `json:"headline,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	UniversityID   *string   `json:"university_id,omitempty"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	Major          *string   `json:"major,omitempty"`
	IsMentor       bool      `json:"is_mentor"`
}

func NewUserCard(user *entity.User) UserCard {
	return UserCard{
		ID:             user.ID,
		Name:           user.Name,
		Headline:       user.Headline,
		AvatarURL:      user.AvatarURL,
		UniversityID:   user.UniversityID,
		GraduationYear: user.GraduationYear,
		Major:          user.Major,
		IsMentor:       user.IsMentor,
	}
}

type ConnectionResponse struct {
	User        UserCard  `json:"user"`
	ConnectedAt time.Time `json:"connected_at"`
}

type PaginatedConnectionsResponse struct {
	Data []ConnectionResponse     `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type RequestResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Direction string    `json:"direction"`
	User      UserCard  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse keeps the wire names existing clients rely on:
// is_connected and request_status. request_status is "pending" or "none";
// terminal requests read as "none".
type StatusResponse struct {
	IsConnected   bool    `json:"is_connected"`
	RequestStatus string  `json:"request_status"`
	Direction     *string `json:"direction,omitempty"`
}
