package services

import "time"

// CreateEventRequest is the payload for creating an event. Dates are
// timestamps; start/end times are clock strings ("15:04").
type CreateEventRequest struct {
	Name            string    `json:"name" validate:"required,min=3,max=200"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	StartTime       string    `json:"start_time" validate:"required"`
	EndTime         string    `json:"end_time" validate:"required"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Images          []string  `json:"images,omitempty" validate:"omitempty,dive,url"`
	Latitude        *float64  `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64  `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Address         string    `json:"address" validate:"required,max=500"`
	IsFree          bool      `json:"is_free"`
	Price           *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	MaxParticipants *int      `json:"max_participants,omitempty" validate:"omitempty,gt=0"`
	IsPublic        bool      `json:"is_public"`
	CategoryID      uint      `json:"category_id" validate:"required,gt=0"`
}

// CategoryInfo is the nested category summary of an event response.
type CategoryInfo struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description *string `json:"description,omitempty"`
}

// UserInfo is a user summary with resolved affiliation names, embedded in
// event responses for the creator and each participant.
type UserInfo struct {
	ID              uint    `json:"id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Surname         string  `json:"surname"`
	UniversityID    uint    `json:"university_id"`
	UniversityName  *string `json:"university_name,omitempty"`
	FacultyID       *uint   `json:"faculty_id,omitempty"`
	FacultyName     *string `json:"faculty_name,omitempty"`
	DepartmentID    *uint   `json:"department_id,omitempty"`
	DepartmentName  *string `json:"department_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// UniversityInfo is the nested university summary of an event response.
type UniversityInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// ParticipantInfo is one confirmed participant of an event.
type ParticipantInfo struct {
	ID          uint      `json:"id"`
	JoinedAt    time.Time `json:"joined_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	User        UserInfo  `json:"user"`
}

// EventResponse is the fully assembled detail view of an event. The derived
// booleans are computed at assembly time and IsUserParticipant is relative to
// the requesting caller, so a response must never be reused across callers.
type EventResponse struct {
	ID                      uint              `json:"id"`
	Name                    string            `json:"name"`
	StartDate               time.Time         `json:"start_date"`
	EndDate                 time.Time         `json:"end_date"`
	StartTime               string            `json:"start_time"`
	EndTime                 string            `json:"end_time"`
	Description             *string           `json:"description,omitempty"`
	Images                  []string          `json:"images"`
	Latitude                *float64          `json:"latitude,omitempty"`
	Longitude               *float64          `json:"longitude,omitempty"`
	Address                 string            `json:"address"`
	IsFree                  bool              `json:"is_free"`
	Price                   *float64          `json:"price,omitempty"`
	MaxParticipants         *int              `json:"max_participants,omitempty"`
	CurrentParticipantCount int               `json:"current_participant_count"`
	IsActive                bool              `json:"is_active"`
	IsPublic                bool              `json:"is_public"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               *time.Time        `json:"updated_at,omitempty"`
	Category                CategoryInfo      `json:"category"`
	CreatedByUser           UserInfo          `json:"created_by_user"`
	University              UniversityInfo    `json:"university"`
	Participants            []ParticipantInfo `json:"participants"`
	IsRegistrationOpen      bool              `json:"is_registration_open"`
	IsEventStarted          bool              `json:"is_event_started"`
	IsEventEnded            bool              `json:"is_event_ended"`
	IsUserParticipant       bool              `json:"is_user_participant"`
}
