package entity

import "time"

type UniversityStatus string

const (
	UniversityStatusActive   UniversityStatus = "active"
	UniversityStatusDisabled UniversityStatus = "disabled"
)

// University is the tenant unit. The ID is a stable human-assigned slug
// (e.g. "mit"), not a surrogate key. Disabling a university blocks login
// for its members but never deletes data.
type University struct {
	ID        string           `gorm:"size:50;primaryKey" json:"id"`
	Name      string           `gorm:"size:150;not null" json:"name"`
	Status    UniversityStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *University) IsEnabled() bool {
	return u.Status == UniversityStatusActive
}
