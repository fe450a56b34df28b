package models

import "time"

// Post is a forum thread opener owned by a user and tagged with categories.
type Post struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	UserID      uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Categories []Category `gorm:"many2many:post_categories;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
