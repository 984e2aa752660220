package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catdomain "github.com/fmi-projects/project-management-api/internal/categories/domain"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/projects/domain"
)

var summaryCols = []string{"id", "title", "description", "owner_id", "username", "categories", "comments"}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewProjectRepository(db), mock, db
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	mock.ExpectQuery(`FROM projects p\s+JOIN users u ON u.id = p.owner_id ORDER BY p.id`).
		WillReturnRows(sqlmock.NewRows(summaryCols).
			AddRow(1, "E-commerce Platform", "shop", 2, "johndoe", "{Web,Mobile}", `{"Great idea!"}`).
			AddRow(2, "Empty", "", 2, "johndoe", "{}", "{}"))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "E-commerce Platform", items[0].Name)
	assert.Equal(t, "johndoe", items[0].OwnerName)
	assert.Equal(t, []string{"Web", "Mobile"}, items[0].Categories)
	assert.Equal(t, []string{"Great idea!"}, items[0].Comments)
	assert.Equal(t, []string{}, items[1].Categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Search(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	cat := int64(3)
	f := domain.SearchFilter{
		Title:      "Shop",
		CategoryID: &cat,
		Page:       paging.Params{PageNumber: 1, PageSize: 10, SortBy: "ownerName", SortDirection: "asc"},
	}

	where := `WHERE strpos(p.title, $1) > 0 AND EXISTS (SELECT 1 FROM project_categories pc WHERE pc.project_id = p.id AND pc.category_id = $2)`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM projects p JOIN users u ON u.id = p.owner_id ` + where)).
		WithArgs("Shop", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where + ` ORDER BY u.username ASC LIMIT $3 OFFSET $4`)).
		WithArgs("Shop", int64(3), 10, 0).
		WillReturnRows(sqlmock.NewRows(summaryCols).AddRow(1, "Shop", "", 2, "jd", "{Web}", "{}"))

	items, total, err := repo.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_CRUD(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO projects`).WithArgs(int64(2), "ABC", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	p := &domain.Project{OwnerID: 2, Title: "ABC"}
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, int64(8), p.ID)

	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_owner_id_fkey"})
	assert.ErrorIs(t, repo.Create(ctx, &domain.Project{OwnerID: 99, Title: "ABC"}), domain.ErrOwnerNotFound)

	mock.ExpectQuery(`SELECT id, owner_id, title, description FROM projects WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description"}).AddRow(8, 2, "ABC", ""))
	got, err := repo.Get(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.OwnerID)

	mock.ExpectExec(`UPDATE projects SET title`).WithArgs(int64(8), "ABCD", "d").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(ctx, &domain.Project{ID: 8, Title: "ABCD", Description: "d"}))

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 8), domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Categories(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO project_categories .* ON CONFLICT \(project_id, category_id\) DO NOTHING`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.AddCategory(ctx, 1, 2), "existing link is not an error")

	mock.ExpectExec(`INSERT INTO project_categories`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "project_categories_category_id_fkey"})
	assert.ErrorIs(t, repo.AddCategory(ctx, 1, 9), catdomain.ErrNotFound)

	mock.ExpectExec(`INSERT INTO project_categories`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "project_categories_project_id_fkey"})
	assert.ErrorIs(t, repo.AddCategory(ctx, 9, 2), domain.ErrNotFound)

	mock.ExpectExec(`DELETE FROM project_categories`).WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.RemoveCategory(ctx, 1, 5), domain.ErrCategoryNotLinked)

	mock.ExpectQuery(`FROM project_categories pc\s+JOIN categories c`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(2, "Web", ""))
	cats, err := repo.Categories(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []catdomain.Category{{ID: 2, Name: "Web"}}, cats)

	require.NoError(t, mock.ExpectationsWereMet())
}
