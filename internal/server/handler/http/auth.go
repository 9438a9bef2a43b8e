// Package http provides the dashboard's HTTP handlers: sign-in, the stats
// pages and the entity management pages built on the data grid.
package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/forms"
	"github.com/atinyakov/AssetDesk/internal/middleware"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/session"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// SessionService defines the session operations required by AuthHandler.
type SessionService interface {
	// Login signs in at the asset API and stores a new session.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	// Logout ends the session; the remote call is best effort.
	Logout(ctx context.Context, s models.Session) error
}

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	Sessions     SessionService
	Workspaces   *service.Workspaces
	Views        *Renderer
	Log          *zap.Logger
	CookieSecure bool
}

func credentialFields(v models.Credentials, errs forms.Errors) []Field {
	return []Field{
		{Name: "email", Label: "Email", Type: "email", Value: v.Email, Error: errs["email"]},
		{Name: "password", Label: "Password", Type: "password", Error: errs["password"]},
	}
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, creds models.Credentials, errs forms.Errors, alert string) {
	err := h.Views.Page(w, status, "login", Page{
		Title: "Sign in",
		Alert: alert,
		Lang:  viewer.FromRequest(r).Language(),
		Data:  struct{ Fields []Field }{credentialFields(creds, errs)},
	})
	if err != nil {
		h.Log.Error("render login", zap.Error(err))
	}
}

// LoginForm shows the sign-in form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, models.Credentials{}, nil, "")
}

// Login validates the form, signs in at the asset API, stores the session
// cookie and redirects to the landing page of the account's role.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	creds, errs := forms.Credentials(r.PostForm)
	if errs != nil {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, creds, errs, "")
		return
	}

	sess, err := h.Sessions.Login(r.Context(), creds)
	if err != nil {
		h.Log.Info("sign-in failed", zap.String("email", creds.Email), zap.Error(err))
		h.renderLogin(w, r, http.StatusUnauthorized, creds, nil, api.UserMessage(err, "Login failed"))
		return
	}

	middleware.SetSessionCookie(w, sess, h.CookieSecure)
	http.Redirect(w, r, sess.Role.Home(), http.StatusSeeOther)
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		if err := h.Sessions.Logout(r.Context(), *sess); err != nil {
			h.Log.Error("failed to delete session", zap.Error(err))
		}
		h.Workspaces.Drop(sess.ID)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
