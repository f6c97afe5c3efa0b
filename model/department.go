package model

// Department belongs to exactly one faculty, transitively one university.
type Department struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	FacultyID uint   `gorm:"not null;index" json:"faculty_id"`

	// Relationships
	Faculty Faculty `gorm:"foreignKey:FacultyID" json:"-"`
	Users   []User  `gorm:"foreignKey:DepartmentID" json:"-"`
}
