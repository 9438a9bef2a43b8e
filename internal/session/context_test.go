package session

import (
	"context"
	"testing"

	"github.com/atinyakov/AssetDesk/internal/models"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), &models.Session{ID: "s1", Token: "tok", Role: models.RoleAdmin})

	s, ok := FromContext(ctx)
	if !ok || s.ID != "s1" {
		t.Fatalf("FromContext = %+v, %v", s, ok)
	}
	if Token(ctx) != "tok" {
		t.Errorf("Token = %q", Token(ctx))
	}
	if Role(ctx) != models.RoleAdmin {
		t.Errorf("Role = %q", Role(ctx))
	}
}

func TestContextEmpty(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("expected no session")
	}
	if Token(ctx) != "" || Role(ctx) != "" {
		t.Error("expected empty token and role")
	}
	if _, ok := FromContext(NewContext(ctx, nil)); ok {
		t.Error("nil session must not be reported")
	}
}
