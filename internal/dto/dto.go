// Package dto holds the projections returned by the domain services and
// serialized by the API. Entities never leave the service layer.
package dto

import "time"

// UserResponse is the public view of a user.
type UserResponse struct {
	ID           uint      `json:"id" example:"3"`
	Username     string    `json:"username" example:"alice"`
	Email        string    `json:"email" example:"alice@example.com"`
	Role         string    `json:"role" example:"Member"`
	FriendsCount int64     `json:"friends_count" example:"2"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResponse is returned by login and, when enabled, by registration.
type AuthResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	User      UserResponse `json:"user"`
}

type CategoryResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"General"`
	Description string `json:"description" example:"Anything goes"`
}

// PostResponse is a post enriched with its author, categories and counters.
type PostResponse struct {
	ID              uint     `json:"id" example:"1"`
	Title           string   `json:"title" example:"Hello"`
	Description     string   `json:"description" example:"First **post**"`
	DescriptionHTML string   `json:"description_html" example:"<p>First <strong>post</strong></p>"`
	UserID          uint     `json:"user_id" example:"3"`
	Username        string   `json:"username" example:"alice"`
	Categories      []string `json:"categories"`
	LikeCount       int64    `json:"like_count" example:"1"`
	CommentCount    int64    `json:"comment_count" example:"0"`
	// LikedByMe is set only when the request carried a valid token.
	LikedByMe *bool     `json:"liked_by_me,omitempty" example:"false"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id" example:"1"`
	Content   string    `json:"content" example:"Nice post"`
	PostID    uint      `json:"post_id" example:"1"`
	PostTitle string    `json:"post_title" example:"Hello"`
	UserID    uint      `json:"user_id" example:"3"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeResponse struct {
	ID        uint      `json:"id" example:"1"`
	PostID    uint      `json:"post_id" example:"1"`
	PostTitle string    `json:"post_title" example:"Hello"`
	UserID    uint      `json:"user_id" example:"2"`
	Username  string    `json:"username" example:"moderator.id"`
	CreatedAt time.Time `json:"created_at"`
}

type FriendRequestResponse struct {
	ID               uint      `json:"id" example:"1"`
	SenderID         uint      `json:"sender_id" example:"3"`
	SenderUsername   string    `json:"sender_username" example:"alice"`
	ReceiverID       uint      `json:"receiver_id" example:"4"`
	ReceiverUsername string    `json:"receiver_username" example:"bob"`
	Status           string    `json:"status" example:"Pending"`
	SentAt           time.Time `json:"sent_at"`
}

// FriendResponse describes the other side of a friendship.
type FriendResponse struct {
	FriendshipID uint      `json:"friendship_id" example:"1"`
	UserID       uint      `json:"user_id" example:"4"`
	Username     string    `json:"username" example:"bob"`
	Since        time.Time `json:"since"`
}

// Outcomes of answering a friend request.
const (
	OutcomeAlreadyHandled     = "already_handled"
	OutcomeFriendshipStarted  = "friendship_started"
	OutcomeFriendshipRejected = "friendship_rejected"
)

type AnswerResponse struct {
	RequestID uint   `json:"request_id" example:"1"`
	Outcome   string `json:"outcome" example:"friendship_started"`
}
