package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is an accepted, symmetric connection stored as one row per pair.
// Rows are kept in canonical order (UserID < FriendID) so the unique pair index
// covers both directions.
type Friendship struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_friendships_pair"`
	FriendID  uint `gorm:"not null;uniqueIndex:idx_friendships_pair;index"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NewFriendship returns the canonical row for the pair (a, b).
func NewFriendship(a, b uint) Friendship {
	if a > b {
		a, b = b, a
	}
	return Friendship{UserID: a, FriendID: b}
}

// BeforeCreate orders the pair so (a, b) and (b, a) collide on idx_friendships_pair.
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.UserID > f.FriendID {
		f.UserID, f.FriendID = f.FriendID, f.UserID
	}
	return nil
}
