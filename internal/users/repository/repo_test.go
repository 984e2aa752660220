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

	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/users/domain"
)

var userCols = []string{"id", "username", "password_hash", "first_name", "last_name", "is_admin"}

func setupUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserRepository(db), mock, db
}

func TestUserRepository_Get(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "johndoe", "hash", "John", "Doe", false))

		u, err := repo.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "johndoe", u.Username)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`FROM users u WHERE u.username = \$1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	admin := true
	f := domain.SearchFilter{
		Username: "jo",
		IsAdmin:  &admin,
		Page:     paging.Params{PageNumber: 2, PageSize: 5, SortBy: "username", SortDirection: "desc"},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users u WHERE strpos(u.username, $1) > 0 AND u.is_admin = $2`)).
		WithArgs("jo", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY u.username DESC LIMIT $3 OFFSET $4`)).
		WithArgs("jo", true, 5, 5).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "jo", "h", "Jo", "Smith", true))

	items, total, err := repo.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search_UnknownSort(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	f := domain.SearchFilter{Page: paging.Params{PageNumber: 1, PageSize: 10, SortBy: "password"}}
	_, _, err := repo.Search(context.Background(), f)
	assert.ErrorIs(t, err, paging.ErrUnknownSortField)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("johndoe", "hash", "John", "Doe", false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		u := &domain.User{Username: "johndoe", PasswordHash: "hash", FirstName: "John", LastName: "Doe"}
		require.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, int64(11), u.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err := repo.Create(ctx, &domain.User{Username: "johndoe"})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateDelete(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(3), "jane", "hash", "Jane", "Roe").
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))
	u := &domain.User{ID: 3, Username: "jane", PasswordHash: "hash", FirstName: "Jane", LastName: "Roe"}
	require.NoError(t, repo.Update(ctx, u))
	assert.True(t, u.IsAdmin)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)
	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 99}), domain.ErrNotFound)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, 3))

	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 4), domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
