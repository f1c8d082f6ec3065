package service

import (
	"context"
	"errors"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, errors.New("a category with this name already exists")
	}

	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, errors.New("category not found")
		}
		return dto.CategoryResponse{}, err
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, err
		}
		if existing != nil && existing.ID != id {
			return dto.CategoryResponse{}, errors.New("a category with this name already exists")
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
