package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/dto"
	"forum/backend/internal/models"
)

// CategoryInput is the data needed to create a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService manages categories. Who may mutate them is decided by the router.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.NewConflictError("a category with this name already exists")
	}

	category := models.Category{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := db.Create(&category).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewConflictError("a category with this name already exists")
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	out := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	return out, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	category, err := findCategory(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(*category)
	return &resp, nil
}

// Delete removes the category and detaches it from every post.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCategory(tx, id); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE category_id = ?", id).Error; err != nil {
			return fmt.Errorf("detaching category: %w", err)
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}
		return nil
	})
}

func findCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("fetching category: %w", err)
	}
	return &category, nil
}
