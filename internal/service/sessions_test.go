package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/repository"
	"github.com/atinyakov/AssetDesk/internal/session"
)

type mockAuth struct {
	LoginFunc  func(ctx context.Context, creds models.Credentials) (api.LoginResult, error)
	LogoutFunc func(ctx context.Context) error
}

func (m *mockAuth) Login(ctx context.Context, creds models.Credentials) (api.LoginResult, error) {
	return m.LoginFunc(ctx, creds)
}

func (m *mockAuth) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestSessionsLogin_ReadsTokenClaims(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(2 * time.Hour)
	token := signed(t, jwt.MapClaims{"role": "Admin", "exp": exp.Unix()})

	repo := repository.NewMemorySessionRepository()
	svc := NewSessions(repo, &mockAuth{
		LoginFunc: func(_ context.Context, creds models.Credentials) (api.LoginResult, error) {
			assert.Equal(t, "a@b.c", creds.Email)
			return api.LoginResult{AccessToken: token}, nil
		},
	}, time.Hour, zap.NewNop())
	svc.now = func() time.Time { return now }

	sess, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Equal(t, exp.Unix(), sess.ExpiresAt.Unix())

	stored, err := repo.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, token, stored.Token)
}

func TestSessionsLogin_OpaqueTokenFallsBack(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewSessions(repository.NewMemorySessionRepository(), &mockAuth{
		LoginFunc: func(context.Context, models.Credentials) (api.LoginResult, error) {
			return api.LoginResult{AccessToken: "opaque"}, nil
		},
	}, 8*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return now }

	sess, err := svc.Login(context.Background(), models.Credentials{Email: "u@b.c"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, sess.Role, "unknown role falls back to the least privileged one")
	assert.Equal(t, now.Add(8*time.Hour), sess.ExpiresAt)
}

func TestSessionsLogin_ExplicitRoleWins(t *testing.T) {
	token := signed(t, jwt.MapClaims{"role": "user"})
	svc := NewSessions(repository.NewMemorySessionRepository(), &mockAuth{
		LoginFunc: func(context.Context, models.Credentials) (api.LoginResult, error) {
			return api.LoginResult{AccessToken: token, Role: models.RoleAdmin}, nil
		},
	}, time.Hour, zap.NewNop())

	sess, err := svc.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.Role)
}

func TestSessionsLogin_Rejected(t *testing.T) {
	apiErr := &api.Error{StatusCode: 401, Message: "Invalid credentials"}
	svc := NewSessions(repository.NewMemorySessionRepository(), &mockAuth{
		LoginFunc: func(context.Context, models.Credentials) (api.LoginResult, error) {
			return api.LoginResult{}, apiErr
		},
	}, time.Hour, zap.NewNop())

	_, err := svc.Login(context.Background(), models.Credentials{})
	assert.ErrorIs(t, err, apiErr)
}

func TestSessionsGet_Expired(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemorySessionRepository()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, models.Session{ID: "old", ExpiresAt: now.Add(-time.Second)}))

	svc := NewSessions(repo, &mockAuth{}, time.Hour, zap.NewNop())

	_, err := svc.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionsLogout_BestEffort(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemorySessionRepository()
	sess := models.Session{ID: "sid", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, sess))

	var sentToken string
	svc := NewSessions(repo, &mockAuth{
		LogoutFunc: func(ctx context.Context) error {
			sentToken = session.Token(ctx)
			return errors.New("network down")
		},
	}, time.Hour, zap.NewNop())

	require.NoError(t, svc.Logout(ctx, sess))
	assert.Equal(t, "tok", sentToken)

	_, err := repo.Get(ctx, "sid")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
