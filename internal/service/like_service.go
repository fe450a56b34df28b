package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/dto"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

// LikeService records likes. A user likes a post at most once.
type LikeService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewLikeService(db *gorm.DB, notifier Notifier) *LikeService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &LikeService{db: db, notifier: notifier}
}

// Create likes postID as userID.
func (s *LikeService) Create(ctx context.Context, postID, userID uint) (*dto.LikeResponse, error) {
	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("checking like: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.NewConflictError("post already liked")
	}

	post, err := findPost(db, postID)
	if err != nil {
		return nil, err
	}
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	like := models.Like{PostID: post.ID, UserID: user.ID}
	if err := db.Omit("Post", "User").Create(&like).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewConflictError("post already liked")
		}
		return nil, fmt.Errorf("creating like: %w", err)
	}
	like.Post = *post
	like.User = *user

	resp := toLikeResponse(like)
	if post.UserID != user.ID {
		s.notifier.Notify(post.UserID, hub.Event{Type: hub.EventPostLiked, Payload: resp})
	}
	return &resp, nil
}

// Delete removes the like of userID on postID and reports whether one existed.
func (s *LikeService) Delete(ctx context.Context, postID, userID uint) (bool, error) {
	res := s.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, fmt.Errorf("deleting like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetAll returns a page of all likes, newest first.
func (s *LikeService) GetAll(ctx context.Context, opts ListOptions) ([]dto.LikeResponse, int64, error) {
	opts = opts.Normalize()
	query := s.db.WithContext(ctx).Model(&models.Like{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting likes: %w", err)
	}

	var likes []models.Like
	if err := s.db.WithContext(ctx).Preload("Post").Preload("User").Order("id DESC").Scopes(paginate(opts)).Find(&likes).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching likes: %w", err)
	}
	return likeResponses(likes), total, nil
}

func (s *LikeService) GetByID(ctx context.Context, id uint) (*dto.LikeResponse, error) {
	var like models.Like
	if err := s.db.WithContext(ctx).Preload("Post").Preload("User").First(&like, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("like not found")
		}
		return nil, fmt.Errorf("fetching like: %w", err)
	}
	resp := toLikeResponse(like)
	return &resp, nil
}
