package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fmi-projects/project-management-api/internal/auth/domain"
	userdomain "github.com/fmi-projects/project-management-api/internal/users/domain"
)

// UserLookup is satisfied by the users repository.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*userdomain.User, error)
}

type TokenStore interface {
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Rotate(ctx context.Context, userID int64, consume, newToken string) (*domain.RefreshToken, error)
}

type AuthService struct {
	users    UserLookup
	tokens   TokenStore
	issuer   *TokenIssuer
	limiter  Limiter
	dummy    []byte
	newToken func() string
}

func NewAuthService(users UserLookup, tokens TokenStore, issuer *TokenIssuer, limiter Limiter, bcryptCost int) *AuthService {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &AuthService{
		users:    users,
		tokens:   tokens,
		issuer:   issuer,
		limiter:  limiter,
		dummy:    dummy,
		newToken: uuid.NewString,
	}
}

// Login checks the credentials and issues a fresh token pair. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return domain.TokenPair{}, err
	}
	log := zerolog.Ctx(ctx)

	locked, err := s.limiter.Locked(ctx, req.Username)
	if err != nil {
		log.Warn().Err(err).Msg("lockout check failed")
	}
	if locked {
		return domain.TokenPair{}, domain.ErrLockedOut
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	switch {
	case errors.Is(err, userdomain.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(req.Password))
		s.fail(ctx, req.Username)
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	case err != nil:
		return domain.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.fail(ctx, req.Username)
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, req.Username); err != nil {
		log.Warn().Err(err).Msg("lockout reset failed")
	}

	pair, err := s.rotate(ctx, user.ID, "")
	if err != nil {
		return domain.TokenPair{}, err
	}
	log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a Pending refresh token for a new pair. The presented
// token is Used afterwards.
func (s *AuthService) Refresh(ctx context.Context, req domain.RefreshRequest) (domain.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return domain.TokenPair{}, err
	}

	rt, err := s.tokens.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if rt.Status != domain.TokenPending {
		zerolog.Ctx(ctx).Warn().Int64("user_id", rt.UserID).Msg("used refresh token presented")
		return domain.TokenPair{}, domain.ErrRefreshTokenUsed
	}

	return s.rotate(ctx, rt.UserID, rt.Token)
}

// VerifyAccess returns the user id an access token was issued for.
func (s *AuthService) VerifyAccess(token string) (int64, error) {
	return s.issuer.Parse(token)
}

func (s *AuthService) rotate(ctx context.Context, userID int64, consume string) (domain.TokenPair, error) {
	rt, err := s.tokens.Rotate(ctx, userID, consume, s.newToken())
	if err != nil {
		return domain.TokenPair{}, err
	}
	access, err := s.issuer.Issue(userID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	return domain.TokenPair{Success: true, Token: access, RefreshToken: rt.Token}, nil
}

func (s *AuthService) fail(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("recording login failure failed")
	}
}
