package domain

import (
	"fmt"

	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

var (
	ErrInvalidCredentials   = fmt.Errorf("invalid username or password: %w", apperr.ErrUnauthorized)
	ErrRefreshTokenNotFound = fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthorized)
	ErrRefreshTokenUsed     = fmt.Errorf("refresh token already used: %w", apperr.ErrUnauthorized)
	ErrUserGone             = fmt.Errorf("user no longer exists: %w", apperr.ErrUnauthorized)
	ErrInvalidAccessToken   = fmt.Errorf("invalid access token: %w", apperr.ErrUnauthorized)
	ErrLockedOut            = fmt.Errorf("too many failed login attempts, try again later: %w", apperr.ErrTooManyAttempts)
)

// TokenStatus is stored as a smallint. Pending is the only status that
// authorizes a refresh; Used is terminal.
type TokenStatus int16

const (
	TokenPending TokenStatus = 0
	TokenUsed    TokenStatus = 1
)

func (s TokenStatus) String() string {
	switch s {
	case TokenPending:
		return "Pending"
	case TokenUsed:
		return "Used"
	default:
		return fmt.Sprintf("TokenStatus(%d)", int16(s))
	}
}

func (s TokenStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type RefreshToken struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"userId"`
	Token  string      `json:"token"`
	Status TokenStatus `json:"status"`
}

// TokenPair is returned by both the login and refresh endpoints.
type TokenPair struct {
	Success      bool   `json:"success"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var c validation.Checker
	c.Check("username", r.Username, "required,min=3,max=50", "Username must be between 3 and 50 characters")
	c.Check("password", r.Password, "required,min=6,max=100", "Password must be between 6 and 100 characters")
	return c.Err()
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r RefreshRequest) Validate() error {
	var c validation.Checker
	c.Check("refreshToken", r.RefreshToken, "required,max=255", "Refresh token is required and cannot exceed 255 characters")
	return c.Err()
}
