package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fmi-projects/project-management-api/internal/auth/domain"
	"github.com/fmi-projects/project-management-api/internal/validation"
	userdomain "github.com/fmi-projects/project-management-api/internal/users/domain"
)

type fakeUsers map[string]*userdomain.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*userdomain.User, error) {
	u, ok := f[username]
	if !ok {
		return nil, userdomain.ErrNotFound
	}
	return u, nil
}

// fakeTokens applies the same rotation rules as the SQL repository. mu plays
// the part of the user row lock taken by Rotate.
type fakeTokens struct {
	mu     sync.Mutex
	rows   []*domain.RefreshToken
	nextID int64
}

func (f *fakeTokens) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rt := range f.rows {
		if rt.Token == token {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, domain.ErrRefreshTokenNotFound
}

func (f *fakeTokens) Rotate(_ context.Context, userID int64, consume, newToken string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if consume != "" {
		var hit *domain.RefreshToken
		for _, rt := range f.rows {
			if rt.Token == consume && rt.UserID == userID && rt.Status == domain.TokenPending {
				hit = rt
			}
		}
		if hit == nil {
			return nil, domain.ErrRefreshTokenUsed
		}
	}
	for _, rt := range f.rows {
		if rt.UserID == userID {
			rt.Status = domain.TokenUsed
		}
	}
	f.nextID++
	rt := &domain.RefreshToken{ID: f.nextID, UserID: userID, Token: newToken, Status: domain.TokenPending}
	f.rows = append(f.rows, rt)
	cp := *rt
	return &cp, nil
}

func (f *fakeTokens) pending(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, rt := range f.rows {
		if rt.UserID == userID && rt.Status == domain.TokenPending {
			out = append(out, rt.Token)
		}
	}
	return out
}

type countingLimiter struct {
	failures map[string]int
	max      int
}

func (l *countingLimiter) Locked(_ context.Context, u string) (bool, error) {
	return l.failures[u] >= l.max, nil
}
func (l *countingLimiter) RecordFailure(_ context.Context, u string) error {
	l.failures[u]++
	return nil
}
func (l *countingLimiter) Reset(_ context.Context, u string) error {
	delete(l.failures, u)
	return nil
}

func newTestService(t *testing.T) (*AuthService, *fakeTokens, *countingLimiter) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := fakeUsers{"alice": {ID: 1, Username: "alice", PasswordHash: string(hash)}}
	tokens := &fakeTokens{}
	limiter := &countingLimiter{failures: map[string]int{}, max: 3}

	svc := NewAuthService(users, tokens, newTestIssuer(t), limiter, bcrypt.MinCost)
	n := 0
	svc.newToken = func() string {
		n++
		return fmt.Sprintf("rt-%d", n)
	}
	return svc, tokens, limiter
}

func TestLogin(t *testing.T) {
	svc, tokens, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, pair.Success)
	assert.Equal(t, "rt-1", pair.RefreshToken)

	id, err := svc.VerifyAccess(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rt-2"}, tokens.pending(1))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, limiter := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Equal(t, 1, limiter.failures["alice"])
	assert.Equal(t, 1, limiter.failures["nobody"])
}

func TestLogin_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "al"})
	ve, ok := validation.As(err)
	require.True(t, ok)
	assert.True(t, ve.Has("username"))
	assert.True(t, ve.Has("password"))
}

func TestLogin_Lockout(t *testing.T) {
	svc, _, limiter := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "wrong-pass"})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrLockedOut)

	require.NoError(t, limiter.Reset(ctx, "alice"))
	_, err = svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	_, still := limiter.failures["alice"]
	assert.False(t, still)
}

func TestRefresh_Rotates(t *testing.T) {
	svc, tokens, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, []string{second.RefreshToken}, tokens.pending(1))

	_, err = svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrRefreshTokenUsed)
	assert.Equal(t, []string{second.RefreshToken}, tokens.pending(1))
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Refresh(context.Background(), domain.RefreshRequest{RefreshToken: "missing"})
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRefresh_ConcurrentUseOfOneToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := fakeUsers{"alice": {ID: 1, Username: "alice", PasswordHash: string(hash)}}
	tokens := &fakeTokens{}
	svc := NewAuthService(users, tokens, newTestIssuer(t), NoopLimiter{}, bcrypt.MinCost)
	svc.newToken = uuid.NewString
	ctx := context.Background()

	first, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		refreshed int
	)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: first.RefreshToken})
			if err == nil {
				mu.Lock()
				refreshed++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrRefreshTokenUsed)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret123"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, refreshed, 1)
	assert.Len(t, tokens.pending(1), 1)
}
