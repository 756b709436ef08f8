package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/apperror"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
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

// UpdateCategory updates a category's name and description
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CreateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != "" && input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Category already exists")
		}
		category.Name = input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category; its products keep a null reference
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// SetActive toggles a category's active flag
func (s *CategoryService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if err := s.categoryRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	category.Active = active
	return category, nil
}

// ListCategories lists categories with their product counts
func (s *CategoryService) ListCategories(ctx context.Context, search string) ([]repository.CategoryWithCount, error) {
	return s.categoryRepo.List(ctx, search)
}
