package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	catdomain "github.com/fmi-projects/project-management-api/internal/categories/domain"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/projects/domain"
	"github.com/fmi-projects/project-management-api/internal/storage/postgres"
)

const (
	summarySelect = `
SELECT p.id, p.title, p.description, p.owner_id, u.username,
       ARRAY(SELECT c.name FROM project_categories pc
             JOIN categories c ON c.id = pc.category_id
             WHERE pc.project_id = p.id ORDER BY c.name) AS categories,
       ARRAY(SELECT cm.content FROM comments cm
             WHERE cm.project_id = p.id ORDER BY cm.id) AS comments
FROM projects p
JOIN users u ON u.id = p.owner_id`

	summaryCount = `SELECT COUNT(*) FROM projects p JOIN users u ON u.id = p.owner_id`

	fkProjectCategoriesProject  = "project_categories_project_id_fkey"
	fkProjectCategoriesCategory = "project_categories_category_id_fkey"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project with its category names and comment contents.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Summary, error) {
	return r.summaries(ctx, summarySelect+` ORDER BY p.id`)
}

// FindByTitle returns projects whose title contains title.
func (r *ProjectRepository) FindByTitle(ctx context.Context, title string) ([]domain.Summary, error) {
	var w paging.Where
	w.Contains("p.title", title)
	return r.summaries(ctx, summarySelect+w.SQL()+` ORDER BY p.id`, w.Args()...)
}

func (r *ProjectRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Summary, int, error) {
	order, err := domain.SortFields.OrderBy(f.Page)
	if err != nil {
		return nil, 0, err
	}

	var w paging.Where
	w.Contains("p.title", f.Title)
	w.Contains("p.description", f.Description)
	w.Contains("u.username", f.OwnerUsername)
	w.EqualInt64("p.owner_id", f.OwnerID)
	if f.CategoryID != nil {
		w.Raw(`EXISTS (SELECT 1 FROM project_categories pc WHERE pc.project_id = p.id AND pc.category_id = %s)`, *f.CategoryID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, summaryCount+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	limit, args := w.Page(f.Page)
	items, err := r.summaries(ctx, summarySelect+w.SQL()+` ORDER BY `+order+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ProjectRepository) GetSummary(ctx context.Context, id int64) (*domain.Summary, error) {
	items, err := r.summaries(ctx, summarySelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (r *ProjectRepository) summaries(ctx context.Context, q string, args ...any) ([]domain.Summary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Summary, 0, 16)
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.OwnerID, &s.OwnerName,
			pq.Array(&s.Categories), pq.Array(&s.Comments)); err != nil {
			return nil, err
		}
		if s.Categories == nil {
			s.Categories = []string{}
		}
		if s.Comments == nil {
			s.Comments = []string{}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project for the given owner.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id`,
		p.OwnerID, p.Title, p.Description,
	).Scan(&p.ID)
	if postgres.IsForeignKeyViolation(err) {
		return domain.ErrOwnerNotFound
	}
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = $2, description = $3 WHERE id = $1`,
		p.ID, p.Title, p.Description,
	)
	return affected(res, err, domain.ErrNotFound)
}

// Delete removes the project; its comments and category links cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return affected(res, err, domain.ErrNotFound)
}

// AddCategory links a category to a project. Linking twice is a no-op.
func (r *ProjectRepository) AddCategory(ctx context.Context, projectID, categoryID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO project_categories (project_id, category_id)
VALUES ($1, $2)
ON CONFLICT (project_id, category_id) DO NOTHING`, projectID, categoryID)
	switch {
	case postgres.IsForeignKeyViolation(err, fkProjectCategoriesProject):
		return domain.ErrNotFound
	case postgres.IsForeignKeyViolation(err, fkProjectCategoriesCategory):
		return catdomain.ErrNotFound
	}
	return err
}

func (r *ProjectRepository) RemoveCategory(ctx context.Context, projectID, categoryID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_categories WHERE project_id = $1 AND category_id = $2`,
		projectID, categoryID,
	)
	return affected(res, err, domain.ErrCategoryNotLinked)
}

func (r *ProjectRepository) Categories(ctx context.Context, projectID int64) ([]catdomain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.name, c.description
FROM project_categories pc
JOIN categories c ON c.id = pc.category_id
WHERE pc.project_id = $1
ORDER BY c.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catdomain.Category, 0, 8)
	for rows.Next() {
		var c catdomain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func affected(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
