package model

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultEventImage is used when an event is created without any images.
const DefaultEventImage = "https://picsum.photos/200/300"

// Event represents a campus event. An event is scoped to exactly one
// university (the creator's university at creation time) and never changes
// university afterwards. The event row itself is only written at creation;
// join/leave operations touch EventParticipant rows instead.
type Event struct {
	ID              uint                         `gorm:"primaryKey" json:"id"`
	Name            string                       `gorm:"not null;size:200" json:"name"`
	StartDate       time.Time                    `gorm:"not null;index" json:"start_date"`
	EndDate         time.Time                    `gorm:"not null" json:"end_date"`
	StartTime       string                       `gorm:"not null" json:"start_time"` // "15:04"
	EndTime         string                       `gorm:"not null" json:"end_time"`
	Description     *string                      `gorm:"size:2000" json:"description,omitempty"`
	Images          datatypes.JSONSlice[string]  `json:"images"`
	Latitude        *float64                     `json:"latitude,omitempty"`
	Longitude       *float64                     `json:"longitude,omitempty"`
	Address         string                       `gorm:"not null;size:500" json:"address"`
	IsFree          bool                         `gorm:"default:true" json:"is_free"`
	Price           *float64                     `json:"price,omitempty"`
	MaxParticipants *int                         `json:"max_participants,omitempty"`
	IsActive        bool                         `gorm:"default:true" json:"is_active"`
	IsPublic        bool                         `gorm:"default:true" json:"is_public"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       *time.Time                   `json:"updated_at,omitempty"`

	// Foreign keys
	CategoryID      uint `gorm:"not null;index" json:"category_id"`
	CreatedByUserID uint `gorm:"not null" json:"created_by_user_id"`
	UniversityID    uint `gorm:"not null;index" json:"university_id"`

	// Relationships
	Category      Category           `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedByUser User               `gorm:"foreignKey:CreatedByUserID" json:"-"`
	University    University         `gorm:"foreignKey:UniversityID" json:"-"`
	Participants  []EventParticipant `gorm:"foreignKey:EventID" json:"-"`
}

// CurrentParticipantCount counts confirmed participants from the loaded
// participant set. It is recomputed on every call, never cached.
func (e *Event) CurrentParticipantCount() int {
	count := 0
	for _, p := range e.Participants {
		if p.IsConfirmed {
			count++
		}
	}
	return count
}

// IsRegistrationOpen reports whether a user can still join: the event is
// active, has remaining capacity, and has not started yet.
func (e *Event) IsRegistrationOpen() bool {
	if !e.IsActive {
		return false
	}
	if e.MaxParticipants != nil && e.CurrentParticipantCount() >= *e.MaxParticipants {
		return false
	}
	return time.Now().UTC().Before(e.StartDate)
}

// IsEventStarted reports whether the event's start date has passed.
func (e *Event) IsEventStarted() bool {
	return !time.Now().UTC().Before(e.StartDate)
}

// IsEventEnded reports whether the event's end date has passed.
func (e *Event) IsEventEnded() bool {
	return !time.Now().UTC().Before(e.EndDate)
}

// IsCapacityFull reports whether the confirmed participant count has reached
// the participant limit. Always false for unlimited events.
func (e *Event) IsCapacityFull() bool {
	return e.MaxParticipants != nil && e.CurrentParticipantCount() >= *e.MaxParticipants
}
