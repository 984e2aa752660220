package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/users/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]domain.User, int, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// UserService handles user-related business logic
type UserService struct {
	repo       Repository
	bcryptCost int
}

func NewUserService(repo Repository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

func (s *UserService) List(ctx context.Context) ([]domain.View, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.View, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.View, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.View{}, err
	}
	return u.View(), nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (domain.View, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.View{}, err
	}
	return u.View(), nil
}

func (s *UserService) Search(ctx context.Context, f domain.SearchFilter) (paging.Page[domain.View], error) {
	users, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return paging.Page[domain.View]{}, err
	}
	return paging.Map(paging.NewPage(users, total, f.Page), domain.User.View), nil
}

func (s *UserService) Create(ctx context.Context, req domain.CreateRequest) (domain.View, error) {
	if err := req.Validate(); err != nil {
		return domain.View{}, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return domain.View{}, err
	}

	u := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsAdmin:      req.IsAdmin,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return domain.View{}, err
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", u.ID).Msg("user created")
	return u.View(), nil
}

func (s *UserService) Update(ctx context.Context, req domain.EditRequest) (domain.View, error) {
	if err := req.Validate(); err != nil {
		return domain.View{}, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return domain.View{}, err
	}

	u := &domain.User{
		ID:           req.ID,
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return domain.View{}, err
	}
	return u.View(), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
