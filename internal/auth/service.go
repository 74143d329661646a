// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/adlib/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsPremium    bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// EventRecorder is the analytics hook. Recording is best-effort; the
// implementation must never fail a request.
type EventRecorder interface {
	Record(
		ctx context.Context,
		eventType string,
		userID string,
		metadata map[string]any,
	)
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	events       EventRecorder
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	events EventRecorder,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		events:       events,
	}
}

// Login verifies credentials and issues a fresh session token. The dummy
// verification on unknown emails keeps the timing profile flat so the
// endpoint does not leak which addresses are registered.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*UserInfo, string, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, "", ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.events.Record(ctx, "LOGIN", user.ID, nil)

	return user, token, nil
}

// Signup creates a MEMBER account and logs them straight in.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*UserInfo, string, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.events.Record(ctx, "LOGIN", user.ID, map[string]any{"signup": true})

	return user, token, nil
}

// CurrentUser is the page-level authority on who is acting: it verifies
// the raw cookie token and re-resolves the live user record, so role and
// premium changes take effect on the next request even though the token
// still carries the old claims. Nil means anonymous.
func (s *Service) CurrentUser(ctx context.Context, token string) *UserInfo {
	if token == "" {
		return nil
	}

	claims := s.jwt.VerifySessionToken(ctx, token)
	if claims == nil {
		return nil
	}

	user, err := s.userProvider.GetByID(ctx, claims.UserID)
	if err != nil {
		// A token referencing a vanished user is treated as no session.
		return nil
	}

	return user
}

func (s *Service) issueToken(user *UserInfo) (string, error) {
	token, err := s.jwt.CreateSessionToken(SessionClaims{
		UserID:    user.ID,
		Role:      user.Role,
		IsPremium: user.IsPremium,
	})
	if err != nil {
		return "", fmt.Errorf("create session token: %w", err)
	}

	return token, nil
}

func (s *Service) SessionTTL() time.Duration {
	return s.jwt.SessionTTL()
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsPremium: u.IsPremium,
		CreatedAt: u.CreatedAt,
	}
}
