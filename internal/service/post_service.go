package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/auth"
	"forum/backend/internal/dto"
	"forum/backend/internal/models"
)

// PostInput is the data needed to create a post.
type PostInput struct {
	Title       string
	Description string
	CategoryIDs []uint
}

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func findPost(db *gorm.DB, id uint) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	return &post, nil
}

// Create stores a post by authorID. Category ids that do not exist are ignored.
func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput) (*dto.PostResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	db := s.db.WithContext(ctx)
	if _, err := findUser(db, authorID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if len(in.CategoryIDs) > 0 {
		if err := db.Where("id IN ?", in.CategoryIDs).Find(&categories).Error; err != nil {
			return nil, fmt.Errorf("fetching categories: %w", err)
		}
	}

	post := models.Post{
		Title:       title,
		Description: in.Description,
		UserID:      authorID,
		Categories:  categories,
	}
	if err := db.Omit("User", "Categories.*").Create(&post).Error; err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return s.GetByID(ctx, post.ID, authorID)
}

// GetAll returns a page of posts, newest first, optionally filtered by title.
// viewerID is the reading user, or 0 when anonymous.
func (s *PostService) GetAll(ctx context.Context, opts ListOptions, viewerID uint) ([]dto.PostResponse, int64, error) {
	opts = opts.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Post{})
	if opts.Query != "" {
		query = query.Where("LOWER(title) LIKE ?"+likeEscape, containsFold(opts.Query))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	var posts []models.Post
	if err := preloadPost(query).Order("id DESC").Scopes(paginate(opts)).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching posts: %w", err)
	}

	out, err := postResponses(ctx, s.db, posts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *PostService) GetByID(ctx context.Context, id, viewerID uint) (*dto.PostResponse, error) {
	var post models.Post
	if err := preloadPost(s.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("fetching post: %w", err)
	}

	out, err := postResponses(ctx, s.db, []models.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Delete removes a post the caller owns or moderates. Comments and likes
// cascade; categories stay.
func (s *PostService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, id)
		if err != nil {
			return err
		}
		if !auth.CanDeletePost(caller, post.UserID) {
			return apperrors.NewForbiddenError("you are not allowed to delete this post")
		}

		if err := tx.Select("Categories").Delete(post).Error; err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}
		return nil
	})
}

// Comments returns the comments on a post, oldest first.
func (s *PostService) Comments(ctx context.Context, postID uint) ([]dto.CommentResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := db.Preload("Post").Preload("User").Where("post_id = ?", postID).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	return commentResponses(comments), nil
}

// Likes returns the likes on a post.
func (s *PostService) Likes(ctx context.Context, postID uint) ([]dto.LikeResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}

	var likes []models.Like
	if err := db.Preload("Post").Preload("User").Where("post_id = ?", postID).Order("id").Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("fetching likes: %w", err)
	}
	return likeResponses(likes), nil
}
