package model

// Faculty belongs to exactly one university.
type Faculty struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	UniversityID uint   `gorm:"not null;index" json:"university_id"`

	// Relationships
	University  University   `gorm:"foreignKey:UniversityID" json:"-"`
	Departments []Department `gorm:"foreignKey:FacultyID" json:"departments,omitempty"`
	Users       []User       `gorm:"foreignKey:FacultyID" json:"-"`
}
