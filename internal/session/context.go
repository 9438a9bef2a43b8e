// Package session carries the signed-in account through request contexts.
//
// The session middleware builds the value once per request at the
// authenticated-shell boundary; everything below reads it from the context
// instead of looking up cookies or tokens again.
package session

import (
	"context"

	"github.com/atinyakov/AssetDesk/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "session"

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*models.Session)
	return s, ok && s != nil
}

// Token returns the bearer token of the session in ctx, or "".
func Token(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Token
	}
	return ""
}

// Role returns the role of the session in ctx, or "".
func Role(ctx context.Context) models.Role {
	if s, ok := FromContext(ctx); ok {
		return s.Role
	}
	return ""
}
