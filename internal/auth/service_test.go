// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/adlib/internal/core"
)

type fakeUserProvider struct {
	users map[string]*UserInfo // keyed by lowercase email
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: map[string]*UserInfo{}}
}

func (p *fakeUserProvider) add(t *testing.T, email, password, role string, premium bool) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	u := &UserInfo{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         role,
		IsPremium:    premium,
		CreatedAt:    time.Now().UTC(),
	}
	p.users[strings.ToLower(email)] = u
	return u
}

func (p *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	if u, ok := p.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) GetByID(_ context.Context, id string) (*UserInfo, error) {
	for _, u := range p.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*UserInfo, error) {
	if _, ok := p.users[strings.ToLower(email)]; ok {
		return nil, core.ErrDuplicateKey
	}

	u := &UserInfo{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         "MEMBER",
		CreatedAt:    time.Now().UTC(),
	}
	p.users[strings.ToLower(email)] = u
	return u, nil
}

func (p *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	for _, u := range p.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return core.ErrNotFound
}

type recordedEvent struct {
	Type     string
	UserID   string
	Metadata map[string]any
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) Record(
	_ context.Context,
	eventType string,
	userID string,
	metadata map[string]any,
) {
	r.events = append(r.events, recordedEvent{
		Type:     eventType,
		UserID:   userID,
		Metadata: metadata,
	})
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider, *fakeRecorder) {
	t.Helper()

	jwtManager := newTestManager(t, testSessionConfig())
	provider := newFakeUserProvider()
	recorder := &fakeRecorder{}

	return NewService(jwtManager, provider, recorder), provider, recorder
}

func TestLoginSuccess(t *testing.T) {
	svc, provider, recorder := newTestService(t)
	created := provider.add(t, "vet@example.com", "correct horse battery", "MEMBER", false)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "vet@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)

	claims := svc.jwt.VerifySessionToken(context.Background(), token)
	require.NotNil(t, claims)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "MEMBER", claims.Role)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "LOGIN", recorder.events[0].Type)
	assert.Equal(t, created.ID, recorder.events[0].UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, provider, recorder := newTestService(t)
	provider.add(t, "vet@example.com", "correct horse battery", "MEMBER", false)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "vet@example.com",
		Password: "wrong password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.Empty(t, recorder.events)
}

func TestLoginUnknownEmailGetsSameError(t *testing.T) {
	svc, _, recorder := newTestService(t)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, recorder.events)
}

func TestSignupCreatesMemberAndLogsIn(t *testing.T) {
	svc, provider, recorder := newTestService(t)

	user, token, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "long enough password",
		Name:     "New Member",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "MEMBER", user.Role)
	assert.False(t, user.IsPremium)

	stored, err := provider.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "long enough password", stored.PasswordHash)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "LOGIN", recorder.events[0].Type)
	assert.Equal(t, map[string]any{"signup": true}, recorder.events[0].Metadata)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, provider, _ := newTestService(t)
	provider.add(t, "taken@example.com", "correct horse battery", "MEMBER", false)

	_, _, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "taken@example.com",
		Password: "another password",
		Name:     "Imposter",
	})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestCurrentUserResolvesLiveRecord(t *testing.T) {
	svc, provider, _ := newTestService(t)
	created := provider.add(t, "vet@example.com", "correct horse battery", "MEMBER", false)

	_, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "vet@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Flip premium after the token was minted. The live lookup must see it.
	created.IsPremium = true

	user := svc.CurrentUser(context.Background(), token)
	require.NotNil(t, user)
	assert.True(t, user.IsPremium)
}

func TestCurrentUserNilForBadToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Nil(t, svc.CurrentUser(context.Background(), ""))
	assert.Nil(t, svc.CurrentUser(context.Background(), "garbage"))
}

func TestCurrentUserNilForVanishedUser(t *testing.T) {
	svc, provider, _ := newTestService(t)
	provider.add(t, "vet@example.com", "correct horse battery", "MEMBER", false)

	_, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "vet@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	delete(provider.users, "vet@example.com")

	assert.Nil(t, svc.CurrentUser(context.Background(), token))
}
