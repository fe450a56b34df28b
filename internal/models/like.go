package models

import "time"

// Like is a user's like on a post.
// The unique index on (user_id, post_id) is what keeps a user from liking a post twice.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_likes_user_post;index"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
