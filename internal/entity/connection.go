package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// NormalizePair orders two user IDs so an unordered pair always maps to the
// same (low, high) tuple regardless of which side initiated.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// PairKey is the canonical string form of an unordered user pair, used for
// the uniqueness constraints on connections and connection requests.
func PairKey(a, b uuid.UUID) string {
	lo, hi := NormalizePair(a, b)
	return fmt.Sprintf("%s:%s", lo, hi)
}

// Connection is a symmetric relationship stored exactly once per pair.
// UserLowID < UserHighID by construction, so the composite unique index
// enforces "at most one row regardless of direction".
type Connection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserLowID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"user_low_id"`
	UserHighID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"user_high_id"`
	ConnectedAt time.Time `gorm:"autoCreateTime" json:"connected_at"`

	UserLow  *User `gorm:"foreignKey:UserLowID" json:"-"`
	UserHigh *User `gorm:"foreignKey:UserHighID" json:"-"`
}

// NewConnection builds the single canonical row for an unordered pair.
func NewConnection(a, b uuid.UUID) *Connection {
	lo, hi := NormalizePair(a, b)
	return &Connection{ID: uuid.New(), UserLowID: lo, UserHighID: hi}
}

// Other returns the participant that is not the given user.
func (c *Connection) Other(userID uuid.UUID) uuid.UUID {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

// ConnectionRequest is directional: FromUserID asked ToUserID. The unique
// pair_key spans all statuses, so a terminal (accepted/rejected) request
// also blocks a new one between the same pair. That matches the historical
// behavior and is flagged in DESIGN.md as a pending product decision.
type ConnectionRequest struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID uuid.UUID     `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"to_user_id"`
	PairKey    string        `gorm:"size:80;not null;uniqueIndex" json:"-"`
	Status     RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	FromUser *User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

func (r *ConnectionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.PairKey == "" {
		r.PairKey = PairKey(r.FromUserID, r.ToUserID)
	}
	return nil
}
