package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationMentorshipRequest  = "mentorship_request"
	NotificationMentorshipAccepted = "mentorship_accepted"
)

// Notification is an append-only event record. Rows are created inside the
// same transaction as the relationship/mentorship mutation that caused
// them; the real-time push over Redis happens after commit.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Type      string     `gorm:"size:50;not null" json:"type"`
	Title     string     `gorm:"size:150;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	ActionURL *string    `gorm:"size:255" json:"action_url,omitempty"`
	RelatedID *uuid.UUID `gorm:"type:uuid" json:"related_id,omitempty"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User  *User `gorm:"foreignKey:UserID" json:"-"`
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
