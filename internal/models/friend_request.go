package models

import "time"

// FriendRequestStatus defines the state of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending means the receiver has not answered yet.
	FriendRequestPending FriendRequestStatus = "Pending"

	// FriendRequestAccepted is the answer that turns the request into a Friendship.
	FriendRequestAccepted FriendRequestStatus = "Accepted"

	// FriendRequestRejected is the answer that discards the request.
	FriendRequestRejected FriendRequestStatus = "Rejected"
)

// FriendRequest is a proposed friendship from Sender to Receiver.
// At most one request may exist per ordered (sender, receiver) pair; answered
// requests are deleted, so in practice every stored row is pending.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair;index"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	SentAt     time.Time           `gorm:"not null"`

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
