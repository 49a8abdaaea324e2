package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Code string
	Name string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if !utils.IsThreeDigitCode(input.Code) {
		return nil, apperror.NewInvalidInputError("code", "must be exactly three digits")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewInvalidInputError("name", "is required")
	}

	existing, err := s.categoryRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category code already exists")
	}

	category := &entity.Category{Code: input.Code, Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// GetCategoryByCode retrieves a category by its three-digit code
func (s *CategoryService) GetCategoryByCode(ctx context.Context, code string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories returns every category ordered by code
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// RenameCategory updates the category name; the code stays fixed
func (s *CategoryService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewInvalidInputError("name", "is required")
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category that no product references
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
