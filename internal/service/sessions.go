// Package service holds the dashboard's business logic: sign-in sessions,
// per-session workspaces and the entity collections that keep them in sync
// with the asset API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/session"
)

// ErrSessionExpired is returned by Get for a session past its expiry.
var ErrSessionExpired = errors.New("session expired")

// SessionRepository defines the persistence operations required by Sessions.
type SessionRepository interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator exchanges credentials for a bearer token at the asset API.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Sessions binds browser sessions to asset API tokens.
type Sessions struct {
	repo SessionRepository
	auth Authenticator
	ttl  time.Duration
	log  *zap.Logger
	now  func() time.Time
}

// NewSessions constructs Sessions. ttl is used for tokens without an exp claim.
func NewSessions(repo SessionRepository, auth Authenticator, ttl time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{repo: repo, auth: auth, ttl: ttl, log: log, now: time.Now}
}

// tokenClaims is the subset of the access token the dashboard reads.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Login signs in at the asset API and stores a new session.
func (s *Sessions) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		return models.Session{}, err
	}

	now := s.now()
	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     res.AccessToken,
		Role:      res.Role,
		Email:     creds.Email,
		ExpiresAt: now.Add(s.ttl),
	}

	// The token was issued by the asset API, which verifies it on every
	// call; here it is only read.
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(res.AccessToken, claims); err != nil {
		s.log.Debug("access token is not a readable jwt", zap.Error(err))
	} else {
		if claims.ExpiresAt != nil && claims.ExpiresAt.After(now) {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
		if !sess.Role.Valid() {
			sess.Role = models.Role(strings.ToLower(claims.Role))
		}
	}
	if !sess.Role.Valid() {
		sess.Role = models.RoleUser
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get returns the live session with id. Expired sessions are deleted.
func (s *Sessions) Get(ctx context.Context, id string) (models.Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	if sess.Expired(s.now()) {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.log.Warn("failed to delete expired session", zap.Error(err))
		}
		return models.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Logout invalidates the token at the asset API and deletes the session.
// The remote call is best effort.
func (s *Sessions) Logout(ctx context.Context, sess models.Session) error {
	if err := s.auth.Logout(session.NewContext(ctx, &sess)); err != nil {
		s.log.Info("remote logout failed", zap.Error(err))
	}
	return s.repo.Delete(ctx, sess.ID)
}
