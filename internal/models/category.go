package models

// Category groups posts. It has no owner; only moderators manage it.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description string
}
