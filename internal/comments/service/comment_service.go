package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fmi-projects/project-management-api/internal/comments/domain"
	"github.com/fmi-projects/project-management-api/internal/paging"
)

type Repository interface {
	List(ctx context.Context) ([]domain.View, error)
	FindByContent(ctx context.Context, content string) ([]domain.View, error)
	ByProject(ctx context.Context, projectID int64) ([]domain.View, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]domain.View, int, error)
	Get(ctx context.Context, id int64) (*domain.View, error)
	Create(ctx context.Context, c *domain.Comment) error
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type CommentService struct {
	repo Repository
	now  func() time.Time
}

func NewCommentService(repo Repository) *CommentService {
	return &CommentService{repo: repo, now: time.Now}
}

func (s *CommentService) List(ctx context.Context) ([]domain.View, error) {
	return s.repo.List(ctx)
}

func (s *CommentService) Get(ctx context.Context, id int64) (*domain.View, error) {
	return s.repo.Get(ctx, id)
}

func (s *CommentService) FindByContent(ctx context.Context, content string) ([]domain.View, error) {
	return s.repo.FindByContent(ctx, content)
}

func (s *CommentService) ByProject(ctx context.Context, projectID int64) ([]domain.View, error) {
	return s.repo.ByProject(ctx, projectID)
}

func (s *CommentService) Search(ctx context.Context, f domain.SearchFilter) (paging.Page[domain.View], error) {
	items, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return paging.Page[domain.View]{}, err
	}
	return paging.NewPage(items, total, f.Page), nil
}

// Create stores a comment authored by callerID, stamped with the current UTC time.
func (s *CommentService) Create(ctx context.Context, callerID int64, req domain.CreateRequest) (*domain.View, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		Content:   req.Content,
		ProjectID: req.ProjectID,
		UserID:    callerID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("comment_id", c.ID).Int64("project_id", c.ProjectID).Msg("comment created")
	return s.repo.Get(ctx, c.ID)
}

// Update replaces the content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, callerID, id int64, req domain.UpdateRequest) (*domain.View, error) {
	v, err := s.authored(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, id, req.Content); err != nil {
		return nil, err
	}
	v.Content = req.Content
	return v, nil
}

// Delete removes the comment. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.authored(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *CommentService) authored(ctx context.Context, callerID, id int64) (*domain.View, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != callerID {
		zerolog.Ctx(ctx).Warn().Int64("comment_id", id).Int64("caller_id", callerID).Msg("comment change by non-author refused")
		return nil, domain.ErrNotAuthor
	}
	return v, nil
}
