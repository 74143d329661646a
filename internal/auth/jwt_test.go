// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/adlib/internal/config"
	"github.com/carterperez-dev/adlib/internal/core"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:      "test-secret-that-is-long-enough-0123456789",
		TokenExpire: time.Hour,
		Issuer:      "adlib",
		Audience:    "adlib-web",
	}
}

func newTestManager(t *testing.T, cfg config.SessionConfig) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(cfg, "test")
	require.NoError(t, err)

	return m
}

func TestNewJWTManagerRequiresSecretInProduction(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Secret = ""

	_, err := NewJWTManager(cfg, "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret is required")
}

func TestNewJWTManagerFallsBackToDevKeyOutsideProduction(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Secret = ""

	m, err := NewJWTManager(cfg, "development")
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, testSessionConfig())

	token, err := m.CreateSessionToken(SessionClaims{
		UserID:    "user-1",
		Role:      "MEMBER",
		IsPremium: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := m.VerifySessionToken(context.Background(), token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "MEMBER", claims.Role)
	assert.True(t, claims.IsPremium)
	assert.WithinDuration(
		t,
		time.Now().Add(time.Hour),
		claims.ExpiresAt,
		time.Minute,
	)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testSessionConfig()
	cfg.TokenExpire = -time.Minute
	m := newTestManager(t, cfg)

	token, err := m.CreateSessionToken(SessionClaims{
		UserID: "user-1",
		Role:   "MEMBER",
	})
	require.NoError(t, err)

	assert.Nil(t, m.VerifySessionToken(context.Background(), token))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t, testSessionConfig())

	other := testSessionConfig()
	other.Secret = "a-completely-different-secret-9876543210"
	foreign := newTestManager(t, other)

	token, err := foreign.CreateSessionToken(SessionClaims{
		UserID: "user-1",
		Role:   "ADMIN",
	})
	require.NoError(t, err)

	assert.Nil(t, m.VerifySessionToken(context.Background(), token))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t, testSessionConfig())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		assert.Nil(t, m.VerifySessionToken(context.Background(), token))
	}
}

func TestClassifyTokenError(t *testing.T) {
	expired := errors.New(`"exp" not satisfied`)
	assert.ErrorIs(t, classifyTokenError(expired), core.ErrTokenExpired)

	malformed := errors.New("failed to parse token: invalid compact serialization")
	assert.ErrorIs(t, classifyTokenError(malformed), core.ErrTokenInvalid)

	badSignature := errors.New("could not verify message using any of the signatures or keys")
	assert.ErrorIs(t, classifyTokenError(badSignature), core.ErrTokenInvalid)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	m := newTestManager(t, testSessionConfig())

	other := testSessionConfig()
	other.Audience = "another-app"
	issuer := newTestManager(t, other)

	token, err := issuer.CreateSessionToken(SessionClaims{
		UserID: "user-1",
		Role:   "MEMBER",
	})
	require.NoError(t, err)

	assert.Nil(t, m.VerifySessionToken(context.Background(), token))
}
