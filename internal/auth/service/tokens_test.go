package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-projects/project-management-api/config"
	"github.com/fmi-projects/project-management-api/internal/auth/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    testSecret,
		Issuer:    "fmi",
		Audience:  "project-management-app",
		AccessTTL: 5 * time.Minute,
	}
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testJWTConfig())
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_RejectsShortSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = "short"
	_, err := NewTokenIssuer(cfg)
	assert.Error(t, err)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	raw, err := issuer.Issue(42)
	require.NoError(t, err)

	id, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims["loggedUserId"])
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "fmi", claims["iss"])
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	raw, err := issuer.Issue(1)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(6 * time.Minute) }
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	issuer := newTestIssuer(t)

	t.Run("wrong audience", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Audience = "someone-else"
		other, err := NewTokenIssuer(cfg)
		require.NoError(t, err)
		raw, err := other.Issue(1)
		require.NoError(t, err)
		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Secret = "ffffffffffffffffffffffffffffffff"
		other, err := NewTokenIssuer(cfg)
		require.NoError(t, err)
		raw, err := other.Issue(1)
		require.NoError(t, err)
		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
	})

	t.Run("other signing method", func(t *testing.T) {
		claims := accessClaims{
			LoggedUserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "1",
				Issuer:    "fmi",
				Audience:  jwt.ClaimStrings{"project-management-app"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
	})
}
