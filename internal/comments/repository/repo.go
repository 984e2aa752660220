package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fmi-projects/project-management-api/internal/comments/domain"
	"github.com/fmi-projects/project-management-api/internal/paging"
	projdomain "github.com/fmi-projects/project-management-api/internal/projects/domain"
	"github.com/fmi-projects/project-management-api/internal/storage/postgres"
	userdomain "github.com/fmi-projects/project-management-api/internal/users/domain"
)

const (
	viewSelect = `
SELECT c.id, c.content, c.created_at, c.project_id, p.title, c.user_id, u.username
FROM comments c
JOIN projects p ON p.id = c.project_id
JOIN users u ON u.id = c.user_id`

	viewCount = `
SELECT COUNT(*)
FROM comments c
JOIN projects p ON p.id = c.project_id
JOIN users u ON u.id = c.user_id`

	fkCommentsProject = "comments_project_id_fkey"
	fkCommentsUser    = "comments_user_id_fkey"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) List(ctx context.Context) ([]domain.View, error) {
	return r.views(ctx, viewSelect+` ORDER BY c.id`)
}

func (r *CommentRepository) FindByContent(ctx context.Context, content string) ([]domain.View, error) {
	var w paging.Where
	w.Contains("c.content", content)
	return r.views(ctx, viewSelect+w.SQL()+` ORDER BY c.id`, w.Args()...)
}

func (r *CommentRepository) ByProject(ctx context.Context, projectID int64) ([]domain.View, error) {
	return r.views(ctx, viewSelect+` WHERE c.project_id = $1 ORDER BY c.created_at, c.id`, projectID)
}

func (r *CommentRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.View, int, error) {
	order, err := domain.SortFields.OrderBy(f.Page)
	if err != nil {
		return nil, 0, err
	}

	var w paging.Where
	w.Contains("c.content", f.Content)
	w.EqualInt64("c.user_id", f.UserID)
	w.Contains("u.username", f.Username)
	w.EqualInt64("c.project_id", f.ProjectID)
	w.AtLeast("c.created_at", f.FromDate)
	w.AtMost("c.created_at", f.ToDate)

	var total int
	if err := r.db.QueryRowContext(ctx, viewCount+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	limit, args := w.Page(f.Page)
	items, err := r.views(ctx, viewSelect+w.SQL()+` ORDER BY `+order+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CommentRepository) Get(ctx context.Context, id int64) (*domain.View, error) {
	items, err := r.views(ctx, viewSelect+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (r *CommentRepository) views(ctx context.Context, q string, args ...any) ([]domain.View, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.View, 0, 16)
	for rows.Next() {
		var v domain.View
		if err := rows.Scan(&v.ID, &v.Content, &v.CreatedAt, &v.ProjectID, &v.ProjectTitle, &v.UserID, &v.Username); err != nil {
			return nil, err
		}
		v.CreatedAt = v.CreatedAt.UTC()
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO comments (content, project_id, user_id, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`, c.Content, c.ProjectID, c.UserID, c.CreatedAt).Scan(&c.ID)
	switch {
	case postgres.IsForeignKeyViolation(err, fkCommentsProject):
		return projdomain.ErrNotFound
	case postgres.IsForeignKeyViolation(err, fkCommentsUser):
		return userdomain.ErrNotFound
	}
	return err
}

// UpdateContent changes the text only; created_at is never rewritten.
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content = $2 WHERE id = $1`, id, content)
	return affectedOne(res, err)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
