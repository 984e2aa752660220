package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/storage/postgres"
	"github.com/fmi-projects/project-management-api/internal/users/domain"
)

const userColumns = `u.id, u.username, u.password_hash, u.first_name, u.last_name, u.is_admin`

// UserRepository provides persistence operations for users
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

// GetByUsername matches the username exactly.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users u WHERE u.username = $1`, username)
}

func (r *UserRepository) one(ctx context.Context, q string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

// Search returns one page of users matching f and the total match count.
func (r *UserRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.User, int, error) {
	order, err := domain.SortFields.OrderBy(f.Page)
	if err != nil {
		return nil, 0, err
	}

	var w paging.Where
	w.Contains("u.username", f.Username)
	w.Contains("u.first_name", f.FirstName)
	w.Contains("u.last_name", f.LastName)
	w.EqualBool("u.is_admin", f.IsAdmin)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, args := w.Page(f.Page)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users u`+w.SQL()+` ORDER BY `+order+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (username, password_hash, first_name, last_name, is_admin)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.IsAdmin).Scan(&u.ID)
	if postgres.IsUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	const q = `
UPDATE users
SET username = $2, password_hash = $3, first_name = $4, last_name = $5
WHERE id = $1
RETURNING is_admin;
`
	err := r.db.QueryRowContext(ctx, q, u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName).Scan(&u.IsAdmin)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case postgres.IsUniqueViolation(err):
		return domain.ErrUsernameTaken
	}
	return err
}

// Delete removes the user; projects, comments and refresh tokens cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func collect(rows *sql.Rows) ([]domain.User, error) {
	defer rows.Close()

	out := make([]domain.User, 0, 16)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
