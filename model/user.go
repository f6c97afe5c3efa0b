package model

import "time"

// User represents a registered user. Academic affiliation is optional, but
// when a faculty is set it must belong to the user's university, and when a
// department is set it must belong to the user's faculty (validated at
// registration).
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Name            string    `gorm:"not null" json:"name"`
	Surname         string    `gorm:"not null" json:"surname"`
	UniversityID    *uint     `json:"university_id,omitempty"`
	FacultyID       *uint     `json:"faculty_id,omitempty"`
	DepartmentID    *uint     `json:"department_id,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`

	// Relationships
	University          *University        `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	Faculty             *Faculty           `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Department          *Department        `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedEvents       []Event            `gorm:"foreignKey:CreatedByUserID" json:"-"`
	EventParticipations []EventParticipant `gorm:"foreignKey:UserID" json:"-"`
}

// HasUniversity reports whether the user carries a university affiliation.
// Creating or joining events requires one.
func (u *User) HasUniversity() bool {
	return u.UniversityID != nil
}
