package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/session"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type loaderFunc func(ctx context.Context, id string) (models.Session, error)

func (f loaderFunc) Get(ctx context.Context, id string) (models.Session, error) { return f(ctx, id) }

func TestRequireSession_NoCookie(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequireSession(loaderFunc(func(context.Context, string) (models.Session, error) {
		t.Fatal("loader must not be called without a cookie")
		return models.Session{}, nil
	}), zap.NewNop())(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/home", nil))

	if dummy.called {
		t.Error("did not expect next handler to be called")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != LoginPath {
		t.Errorf("got %d -> %q; want redirect to %s", rec.Code, rec.Header().Get("Location"), LoginPath)
	}
}

func TestRequireSession_UnknownSessionClearsCookie(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequireSession(loaderFunc(func(context.Context, string) (models.Session, error) {
		return models.Session{}, errors.New("session not found")
	}), zap.NewNop())(dummy)

	req := httptest.NewRequest("GET", "/admin/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected cleared cookie, got %+v", cookies)
	}
}

func TestRequireSession_StoresSessionInContext(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequireSession(loaderFunc(func(_ context.Context, id string) (models.Session, error) {
		return models.Session{ID: id, Token: "tok", Role: models.RoleUser}, nil
	}), zap.NewNop())(dummy)

	req := httptest.NewRequest("GET", "/user/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !dummy.called {
		t.Fatal("expected next handler to be called")
	}
	if got := session.Token(dummy.ctx); got != "tok" {
		t.Errorf("token in context = %q; want %q", got, "tok")
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		sess     *models.Session
		called   bool
		location string
	}{
		{name: "admin allowed", sess: &models.Session{Role: models.RoleAdmin}, called: true},
		{name: "user sent home", sess: &models.Session{Role: models.RoleUser}, location: "/user/home"},
		{name: "no session", location: LoginPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			req := httptest.NewRequest("GET", "/admin/assets", nil)
			if tt.sess != nil {
				req = req.WithContext(session.NewContext(req.Context(), tt.sess))
			}
			rec := httptest.NewRecorder()
			RequireRole(models.RoleAdmin)(dummy).ServeHTTP(rec, req)

			if dummy.called != tt.called {
				t.Errorf("called = %v; want %v", dummy.called, tt.called)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q; want %q", got, tt.location)
			}
		})
	}
}

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, models.Session{ID: "sid", ExpiresAt: time.Now().Add(time.Hour)}, true)

	c := rec.Result().Cookies()[0]
	if c.Value != "sid" || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie: %+v", c)
	}
}

func TestRequestID(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequestID(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" || RequestIDFromContext(dummy.ctx) != generated {
		t.Errorf("generated id %q not propagated", generated)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("incoming id not reused, got %q", got)
	}
}

func TestWithRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID(WithRequestLogging(zap.New(core))(&dummyHandler{}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/login", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != "POST" || fields["path"] != "/login" || fields["status"] != int64(200) || fields["bytes"] != int64(2) {
		t.Errorf("unexpected fields: %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("request id missing from log")
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	h := l.Handler(&dummyHandler{})
	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v; want [200 200 429]", codes)
	}

	if !l.Allow("10.0.0.2") {
		t.Error("another IP must have its own bucket")
	}

	removed, _ := l.DeleteExpired(context.Background(), now.Add(10*time.Minute))
	if removed != 2 {
		t.Errorf("removed %d idle buckets; want 2", removed)
	}
}
