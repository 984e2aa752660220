package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fmi-projects/project-management-api/config"
	"github.com/fmi-projects/project-management-api/internal/auth/domain"
)

const loggedUserIDClaim = "loggedUserId"

type accessClaims struct {
	LoggedUserID int64 `json:"loggedUserId"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenIssuer(cfg config.JWTConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < config.MinJWTSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", config.MinJWTSecretLength)
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid access token TTL")
	}
	return &TokenIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.AccessTTL,
		now:      time.Now,
	}, nil
}

// Issue returns a signed access token for userID.
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	now := t.now()
	claims := accessClaims{
		LoggedUserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies raw and returns the user id it was issued for. Every
// failure is reported as domain.ErrInvalidAccessToken.
func (t *TokenIssuer) Parse(raw string) (int64, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidAccessToken
	}
	if claims.LoggedUserID < 1 || claims.Subject != strconv.FormatInt(claims.LoggedUserID, 10) {
		return 0, fmt.Errorf("%s claim mismatch: %w", loggedUserIDClaim, domain.ErrInvalidAccessToken)
	}
	return claims.LoggedUserID, nil
}
