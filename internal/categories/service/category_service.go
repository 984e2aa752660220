package service

import (
	"context"
	"strings"

	"github.com/fmi-projects/project-management-api/internal/categories/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo Repository
}

func NewCategoryService(repo Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, req domain.Request) (*domain.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, req domain.Request) (*domain.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Category{ID: req.ID, Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
