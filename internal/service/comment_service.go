package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/auth"
	"forum/backend/internal/dto"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

type CommentService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCommentService(db *gorm.DB, notifier Notifier) *CommentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &CommentService{db: db, notifier: notifier}
}

// Create adds a comment by authorID to postID and notifies the post's author.
func (s *CommentService) Create(ctx context.Context, postID, authorID uint, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	db := s.db.WithContext(ctx)

	post, err := findPost(db, postID)
	if err != nil {
		return nil, err
	}
	author, err := findUser(db, authorID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{Content: content, PostID: post.ID, UserID: author.ID}
	if err := db.Omit("Post", "User").Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	comment.Post = *post
	comment.User = *author

	resp := toCommentResponse(comment)
	if post.UserID != author.ID {
		s.notifier.Notify(post.UserID, hub.Event{Type: hub.EventCommentCreated, Payload: resp})
	}
	return &resp, nil
}

// GetAll returns a page of all comments, newest first.
func (s *CommentService) GetAll(ctx context.Context, opts ListOptions) ([]dto.CommentResponse, int64, error) {
	opts = opts.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Comment{})
	if opts.Query != "" {
		query = query.Where("LOWER(content) LIKE ?"+likeEscape, containsFold(opts.Query))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting comments: %w", err)
	}

	var comments []models.Comment
	if err := query.Preload("Post").Preload("User").Order("id DESC").Scopes(paginate(opts)).Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching comments: %w", err)
	}
	return commentResponses(comments), total, nil
}

func (s *CommentService) GetByID(ctx context.Context, id uint) (*dto.CommentResponse, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("Post").Preload("User").First(&comment, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("comment not found")
		}
		return nil, fmt.Errorf("fetching comment: %w", err)
	}
	resp := toCommentResponse(comment)
	return &resp, nil
}

// Delete removes a comment if the caller wrote it or moderates content.
func (s *CommentService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if isNotFound(err) {
				return apperrors.NewNotFoundError("comment not found")
			}
			return fmt.Errorf("fetching comment: %w", err)
		}
		if !auth.CanDeleteComment(caller, comment.UserID) {
			return apperrors.NewForbiddenError("you are not allowed to delete this comment")
		}
		if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
			return fmt.Errorf("deleting comment: %w", err)
		}
		return nil
	})
}
