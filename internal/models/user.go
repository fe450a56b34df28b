package models

import "time"

// Role is the coarse authorization tier carried on a user and on their token.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
	RoleMember    Role = "Member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleMember:
		return true
	}
	return false
}

// User represents a forum account.
// There is no DeletedAt: users are hard deleted so the FK cascades fire.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:255;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:'Member';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
