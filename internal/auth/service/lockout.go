package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockoutUnavailable indicates the lockout backend is unreachable.
var ErrLockoutUnavailable = errors.New("lockout backend unavailable")

// Limiter counts failed logins per username.
type Limiter interface {
	Locked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// LockoutLimiter keeps a failure counter per username in Redis. The counter
// expires window after the first failure of a streak.
type LockoutLimiter struct {
	redis     redis.UniversalClient
	threshold int
	window    time.Duration
}

func NewLockoutLimiter(client redis.UniversalClient, threshold int, window time.Duration) *LockoutLimiter {
	return &LockoutLimiter{redis: client, threshold: threshold, window: window}
}

func (l *LockoutLimiter) key(username string) string {
	return "login_failures:" + strings.ToLower(username)
}

// Locked reports whether username has reached the failure threshold.
func (l *LockoutLimiter) Locked(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	count, err := l.redis.Get(ctx, l.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return count >= int64(l.threshold), nil
}

func (l *LockoutLimiter) RecordFailure(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	count, err := l.redis.Incr(ctx, l.key(username)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	if count == 1 && l.window > 0 {
		if err := l.redis.Expire(ctx, l.key(username), l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
		}
	}
	return nil
}

func (l *LockoutLimiter) Reset(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	if err := l.redis.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLockoutUnavailable, err)
	}
	return nil
}

// NoopLimiter never locks anyone out. Used when Redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Locked(context.Context, string) (bool, error) { return false, nil }
func (NoopLimiter) RecordFailure(context.Context, string) error  { return nil }
func (NoopLimiter) Reset(context.Context, string) error          { return nil }
