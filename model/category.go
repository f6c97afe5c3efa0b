package model

// Category tags events. A category cannot be deleted while events still
// reference it.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;uniqueIndex" json:"name"`
	Icon        string  `gorm:"not null" json:"icon"`
	Description *string `json:"description,omitempty"`

	// Relationships
	Events []Event `gorm:"foreignKey:CategoryID" json:"-"`
}
