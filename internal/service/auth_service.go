package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/dto"
	"forum/backend/internal/models"
)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService registers and authenticates users.
type AuthService struct {
	db       *gorm.DB
	hashCost int
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, hashCost: bcrypt.DefaultCost}
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a Member account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match")
	}

	db := s.db.WithContext(ctx)

	var taken int64
	if err := db.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if taken > 0 {
		return nil, apperrors.NewConflictError("username or email is already taken")
	}

	hash, err := HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleMember,
	}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewConflictError("username or email is already taken")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	resp := toUserResponse(user, 0)
	return &resp, nil
}

// Login verifies the credentials of the user whose username or email matches login.
func (s *AuthService) Login(ctx context.Context, login, password string) (*dto.UserResponse, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperrors.NewValidationError("login and password are required")
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	counts, err := friendCounts(ctx, s.db, []uint{user.ID})
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user, counts[user.ID])
	return &resp, nil
}
