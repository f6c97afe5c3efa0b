package model

// University represents an educational institution, the root of the academic
// hierarchy. Reference data; immutable after seeding.
type University struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;uniqueIndex" json:"name"`
	ShortName string `gorm:"not null" json:"short_name"`

	// Relationships
	Faculties []Faculty `gorm:"foreignKey:UniversityID" json:"faculties,omitempty"`
	Users     []User    `gorm:"foreignKey:UniversityID" json:"-"`
	Events    []Event   `gorm:"foreignKey:UniversityID" json:"-"`
}
