package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/auth"
	"forum/backend/internal/dto"
	"forum/backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func findUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &user, nil
}

// GetByID returns a user with their friend count.
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := findUser(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	users, err := userResponses(ctx, s.db, []models.User{*user})
	if err != nil {
		return nil, err
	}
	return &users[0], nil
}

// List returns a page of users, optionally filtered by username, and the total match count.
func (s *UserService) List(ctx context.Context, opts ListOptions) ([]dto.UserResponse, int64, error) {
	opts = opts.Normalize()

	query := s.db.WithContext(ctx).Model(&models.User{})
	if opts.Query != "" {
		query = query.Where("LOWER(username) LIKE ?"+likeEscape, containsFold(opts.Query))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	var users []models.User
	if err := query.Order("id").Scopes(paginate(opts)).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching users: %w", err)
	}

	out, err := userResponses(ctx, s.db, users)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Delete removes a user. Friend requests and friendships are removed in the same
// transaction; posts, comments and likes go with the foreign key cascades.
func (s *UserService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}
		if !auth.CanDeleteUser(caller, user.ID) {
			return apperrors.NewForbiddenError("you can only delete your own account")
		}

		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&models.FriendRequest{}).Error; err != nil {
			return fmt.Errorf("deleting friend requests: %w", err)
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return fmt.Errorf("deleting friendships: %w", err)
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE post_id IN (SELECT id FROM posts WHERE user_id = ?)", id).Error; err != nil {
			return fmt.Errorf("detaching categories: %w", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
}

// Posts returns the posts written by the user.
func (s *UserService) Posts(ctx context.Context, id uint) ([]dto.PostResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, id); err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := preloadPost(db).Where("user_id = ?", id).Order("id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	return postResponses(ctx, s.db, posts, 0)
}

// Comments returns the comments written by the user.
func (s *UserService) Comments(ctx context.Context, id uint) ([]dto.CommentResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, id); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := db.Preload("Post").Preload("User").Where("user_id = ?", id).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	return commentResponses(comments), nil
}

// Likes returns the likes given by the user.
func (s *UserService) Likes(ctx context.Context, id uint) ([]dto.LikeResponse, error) {
	db := s.db.WithContext(ctx)
	if _, err := findUser(db, id); err != nil {
		return nil, err
	}

	var likes []models.Like
	if err := db.Preload("Post").Preload("User").Where("user_id = ?", id).Order("id").Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("fetching likes: %w", err)
	}
	return likeResponses(likes), nil
}

// SetRole changes a user's role. Tokens issued before the change keep the old role until they expire.
func (s *UserService) SetRole(ctx context.Context, id uint, role models.Role) (*dto.UserResponse, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	db := s.db.WithContext(ctx)
	user, err := findUser(db, id)
	if err != nil {
		return nil, err
	}

	if err := db.Model(user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("updating role: %w", err)
	}
	return s.GetByID(ctx, id)
}

// FindByUsername returns the id of the user with the given username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (uint, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return 0, apperrors.NewNotFoundError("user not found")
		}
		return 0, fmt.Errorf("fetching user: %w", err)
	}
	return user.ID, nil
}
