package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fmi-projects/project-management-api/internal/auth/domain"
)

// TokenRepository persists refresh tokens.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// FindByToken matches the token value exactly.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, status FROM refresh_tokens WHERE token = $1`, token,
	).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// Rotate leaves newToken as the user's only Pending refresh token. When
// consume is set it must still be Pending and owned by userID, otherwise
// ErrRefreshTokenUsed is returned and nothing changes.
//
// The user row is locked for the duration of the transaction so concurrent
// rotations for the same user serialize.
func (r *TokenRepository) Rotate(ctx context.Context, userID int64, consume, newToken string) (*domain.RefreshToken, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserGone
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if consume != "" {
		res, err := tx.ExecContext(ctx, `
UPDATE refresh_tokens SET status = $3
WHERE token = $1 AND user_id = $2 AND status = $4`,
			consume, userID, domain.TokenUsed, domain.TokenPending)
		if err != nil {
			return nil, fmt.Errorf("consume refresh token: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n != 1 {
			return nil, domain.ErrRefreshTokenUsed
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE refresh_tokens SET status = $2 WHERE user_id = $1 AND status = $3`,
		userID, domain.TokenUsed, domain.TokenPending,
	); err != nil {
		return nil, fmt.Errorf("retire refresh tokens: %w", err)
	}

	rt := &domain.RefreshToken{UserID: userID, Token: newToken, Status: domain.TokenPending}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token, status) VALUES ($1, $2, $3) RETURNING id`,
		userID, newToken, domain.TokenPending,
	).Scan(&rt.ID)
	if err != nil {
		return nil, fmt.Errorf("insert refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rotation: %w", err)
	}
	return rt, nil
}
