package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	catdomain "github.com/fmi-projects/project-management-api/internal/categories/domain"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/projects/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Summary, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Summary, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]domain.Summary, int, error)
	GetSummary(ctx context.Context, id int64) (*domain.Summary, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, projectID, categoryID int64) error
	RemoveCategory(ctx context.Context, projectID, categoryID int64) error
	Categories(ctx context.Context, projectID int64) ([]catdomain.Category, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo Repository
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Summary, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) FindByTitle(ctx context.Context, title string) ([]domain.Summary, error) {
	return s.repo.FindByTitle(ctx, title)
}

func (s *ProjectService) Search(ctx context.Context, f domain.SearchFilter) (paging.Page[domain.Summary], error) {
	items, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return paging.Page[domain.Summary]{}, err
	}
	return paging.NewPage(items, total, f.Page), nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Summary, error) {
	return s.repo.GetSummary(ctx, id)
}

// Create creates a new project owned by callerID
func (s *ProjectService) Create(ctx context.Context, callerID int64, req domain.Request) (*domain.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Project{
		OwnerID:     callerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("project_id", p.ID).Int64("owner_id", callerID).Msg("project created")
	return p, nil
}

// Update replaces title and description. Only the owner may update.
func (s *ProjectService) Update(ctx context.Context, callerID, id int64, req domain.Request) (*domain.Project, error) {
	p, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p.Title = strings.TrimSpace(req.Title)
	p.Description = req.Description
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project. Only the owner may delete.
func (s *ProjectService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int64("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) owned(ctx context.Context, callerID, id int64) (*domain.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

func (s *ProjectService) AddCategory(ctx context.Context, projectID, categoryID int64) error {
	return s.repo.AddCategory(ctx, projectID, categoryID)
}

func (s *ProjectService) RemoveCategory(ctx context.Context, projectID, categoryID int64) error {
	return s.repo.RemoveCategory(ctx, projectID, categoryID)
}

// Categories lists the categories linked to a project. An unknown project
// has no links and yields an empty list.
func (s *ProjectService) Categories(ctx context.Context, projectID int64) ([]catdomain.Category, error) {
	cats, err := s.repo.Categories(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []catdomain.Category{}
	}
	return cats, nil
}
