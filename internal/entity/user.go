package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAlumni     = "alumni"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User belongs to exactly one university unless it is a superadmin, which
// may belong to none and is exempt from tenant filtering. Deactivation is
// a status flip, never a delete.
type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string      `gorm:"size:255;not null" json:"-"`
	Name           string      `gorm:"size:100;not null" json:"name"`
	Role           string      `gorm:"size:20;not null;default:'alumni'" json:"role"`
	UniversityID   *string     `gorm:"size:50;index" json:"university_id,omitempty"`
	University     *University `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"university,omitempty"`
	IsMentor       bool        `gorm:"default:false" json:"is_mentor"`
	Status         UserStatus  `gorm:"size:20;not null;default:'active'" json:"status"`
	Headline       *string     `gorm:"size:150" json:"headline,omitempty"`
	Bio            *string     `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL      *string     `gorm:"type:text" json:"avatar_url,omitempty"`
	GraduationYear *int        `json:"graduation_year,omitempty"`
	Major          *string     `gorm:"size:100" json:"major,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
