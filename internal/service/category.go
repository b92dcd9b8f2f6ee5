package service

import (
	"context"
	"fmt"

	"github.com/avoronin/shop_api/internal/models"
	"github.com/avoronin/shop_api/internal/repo"
	"github.com/avoronin/shop_api/internal/transport"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, req transport.CategoryRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	return s.Repo.UpdateCategory(ctx, id, &models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}
