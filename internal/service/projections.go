package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"forum/backend/internal/dto"
	"forum/backend/internal/markdown"
	"forum/backend/internal/models"
)

type countRow struct {
	ID    uint
	Count int64
}

// countBy counts rows of model grouped by column, restricted to ids.
func countBy(ctx context.Context, db *gorm.DB, model interface{}, column string, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []countRow
	err := db.WithContext(ctx).Model(model).
		Select(column+" AS id, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting by %s: %w", column, err)
	}

	for _, r := range rows {
		counts[r.ID] = r.Count
	}
	return counts, nil
}

// friendCounts counts friendships on either endpoint.
func friendCounts(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]int64, error) {
	asUser, err := countBy(ctx, db, &models.Friendship{}, "user_id", ids)
	if err != nil {
		return nil, err
	}
	asFriend, err := countBy(ctx, db, &models.Friendship{}, "friend_id", ids)
	if err != nil {
		return nil, err
	}
	for id, n := range asFriend {
		asUser[id] += n
	}
	return asUser, nil
}

func toUserResponse(u models.User, friends int64) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		FriendsCount: friends,
		CreatedAt:    u.CreatedAt,
	}
}

func userResponses(ctx context.Context, db *gorm.DB, users []models.User) ([]dto.UserResponse, error) {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	counts, err := friendCounts(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u, counts[u.ID])
	}
	return out, nil
}

func toCategoryResponse(c models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// likedBy returns which of ids the viewer has liked.
func likedBy(ctx context.Context, db *gorm.DB, viewerID uint, ids []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return liked, nil
	}
	var postIDs []uint
	err := db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", viewerID, ids).
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, fmt.Errorf("fetching viewer likes: %w", err)
	}
	for _, id := range postIDs {
		liked[id] = true
	}
	return liked, nil
}

// postResponses expects posts loaded with User and Categories preloaded.
// viewerID 0 means an anonymous reader and leaves LikedByMe unset.
func postResponses(ctx context.Context, db *gorm.DB, posts []models.Post, viewerID uint) ([]dto.PostResponse, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	likes, err := countBy(ctx, db, &models.Like{}, "post_id", ids)
	if err != nil {
		return nil, err
	}
	comments, err := countBy(ctx, db, &models.Comment{}, "post_id", ids)
	if err != nil {
		return nil, err
	}
	var liked map[uint]bool
	if viewerID != 0 {
		if liked, err = likedBy(ctx, db, viewerID, ids); err != nil {
			return nil, err
		}
	}

	out := make([]dto.PostResponse, len(posts))
	for i, p := range posts {
		categories := make([]string, len(p.Categories))
		for j, c := range p.Categories {
			categories[j] = c.Name
		}
		out[i] = dto.PostResponse{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			DescriptionHTML: markdown.Render(p.Description),
			UserID:          p.UserID,
			Username:        p.User.Username,
			Categories:      categories,
			LikeCount:       likes[p.ID],
			CommentCount:    comments[p.ID],
			CreatedAt:       p.CreatedAt,
		}
		if liked != nil {
			likedByMe := liked[p.ID]
			out[i].LikedByMe = &likedByMe
		}
	}
	return out, nil
}

func preloadPost(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.name")
	})
}

// toCommentResponse expects Post and User preloaded.
func toCommentResponse(c models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		PostTitle: c.Post.Title,
		UserID:    c.UserID,
		Username:  c.User.Username,
		CreatedAt: c.CreatedAt,
	}
}

func commentResponses(comments []models.Comment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	return out
}

// toLikeResponse expects Post and User preloaded.
func toLikeResponse(l models.Like) dto.LikeResponse {
	return dto.LikeResponse{
		ID:        l.ID,
		PostID:    l.PostID,
		PostTitle: l.Post.Title,
		UserID:    l.UserID,
		Username:  l.User.Username,
		CreatedAt: l.CreatedAt,
	}
}

func likeResponses(likes []models.Like) []dto.LikeResponse {
	out := make([]dto.LikeResponse, len(likes))
	for i, l := range likes {
		out[i] = toLikeResponse(l)
	}
	return out
}

// toFriendRequestResponse expects Sender and Receiver preloaded.
func toFriendRequestResponse(r models.FriendRequest) dto.FriendRequestResponse {
	return dto.FriendRequestResponse{
		ID:               r.ID,
		SenderID:         r.SenderID,
		SenderUsername:   r.Sender.Username,
		ReceiverID:       r.ReceiverID,
		ReceiverUsername: r.Receiver.Username,
		Status:           string(r.Status),
		SentAt:           r.SentAt,
	}
}

func friendRequestResponses(reqs []models.FriendRequest) []dto.FriendRequestResponse {
	out := make([]dto.FriendRequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = toFriendRequestResponse(r)
	}
	return out
}
