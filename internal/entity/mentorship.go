package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MentorStatus string

const (
	MentorStatusActive   MentorStatus = "active"
	MentorStatusInactive MentorStatus = "inactive"
)

// Mentor is a lazy 1:1 extension of a User with IsMentor set. Toggling
// mentor status off deactivates the profile instead of deleting it, so
// request history and the mentee counter survive.
type Mentor struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User            *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Expertise       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"expertise"`
	Availability    string                      `gorm:"size:100" json:"availability"`
	YearsExperience int                         `gorm:"default:0" json:"years_experience"`
	MenteesCount    int                         `gorm:"default:0" json:"mentees_count"`
	Status          MentorStatus                `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Mentor) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Mentor) IsActive() bool {
	return m.Status == MentorStatusActive
}

// MentorshipRequest is directional mentee → mentor. The composite unique
// index spans all statuses: one request per (mentor, mentee) pair ever,
// so a rejection permanently blocks a retry (historical behavior, see
// DESIGN.md).
type MentorshipRequest struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	MentorID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_mentorship_pair" json:"mentor_id"`
	MenteeID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_mentorship_pair" json:"mentee_id"`
	Message   string        `gorm:"type:text" json:"message"`
	Status    RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Mentor *Mentor `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	Mentee *User   `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`
}

func (r *MentorshipRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
