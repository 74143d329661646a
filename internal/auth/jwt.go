// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/adlib/internal/config"
	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/middleware"
)

// devSecret is only ever used outside production, and only when no secret
// is configured. Production startup fails without an explicit secret.
const devSecret = "adlib-dev-only-session-secret-not-for-production"

type JWTManager struct {
	key    jwk.Key
	config config.SessionConfig
}

func NewJWTManager(
	cfg config.SessionConfig,
	environment string,
) (*JWTManager, error) {
	secret := cfg.Secret
	if secret == "" {
		if environment == "production" {
			return nil, fmt.Errorf("session secret is required in production")
		}
		slog.Warn("no session secret configured, using built-in development key")
		secret = devSecret
	}

	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("import session key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &JWTManager{
		key:    key,
		config: cfg,
	}, nil
}

type SessionClaims struct {
	UserID    string
	Role      string
	IsPremium bool
}

// CreateSessionToken signs the claims into a compact HS256 JWT. Expiry is
// fixed at issuance time from the configured session TTL.
func (m *JWTManager) CreateSessionToken(claims SessionClaims) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		NotBefore(now).
		Claim("role", claims.Role).
		Claim("premium", claims.IsPremium).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// VerifySessionToken fails closed: a bad signature, wrong algorithm,
// malformed token, or past expiry all come back as nil claims. The caller
// treats nil uniformly as anonymous; only the log distinguishes causes.
func (m *JWTManager) VerifySessionToken(
	ctx context.Context,
	tokenString string,
) *middleware.SessionClaims {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		slog.Debug("session token rejected",
			"reason", classifyTokenError(err),
			"error", err,
		)
		return nil
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		slog.Debug("session token rejected", "error", "missing subject")
		return nil
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		slog.Debug("session token rejected", "error", "missing role claim")
		return nil
	}

	var premium bool
	if err := token.Get("premium", &premium); err != nil {
		slog.Debug("session token rejected", "error", "missing premium claim")
		return nil
	}

	expiresAt, _ := token.Expiration()

	return &middleware.SessionClaims{
		UserID:    subject,
		Role:      role,
		IsPremium: premium,
		ExpiresAt: expiresAt,
	}
}

// classifyTokenError buckets jwx parse failures into the shared token
// sentinels. jwx reports expiry as an "exp" validation failure in the error
// string rather than a typed error, so the match is textual.
func classifyTokenError(err error) error {
	errStr := err.Error()
	if strings.Contains(errStr, "exp") && strings.Contains(errStr, "not satisfied") {
		return core.ErrTokenExpired
	}
	return core.ErrTokenInvalid
}

func (m *JWTManager) SessionTTL() time.Duration {
	return m.config.TokenExpire
}

var _ middleware.TokenVerifier = (*JWTManager)(nil)
