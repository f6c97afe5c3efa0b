package model

import "time"

// EventParticipant links a user to an event they joined. The composite unique
// index guarantees at most one participation row per (event, user) pair, even
// under concurrent join attempts. Rows are created on join and deleted on
// leave, never updated in place.
type EventParticipant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;uniqueIndex:idx_event_participants_event_user" json:"event_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_event_participants_event_user" json:"user_id"`
	JoinedAt    time.Time `gorm:"not null" json:"joined_at"`
	IsConfirmed bool      `gorm:"default:false" json:"is_confirmed"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
