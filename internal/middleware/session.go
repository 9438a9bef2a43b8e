package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/session"
)

// SessionCookie is the name of the cookie holding the session id.
const SessionCookie = "assetdesk_session"

// LoginPath is where requests without a live session are sent.
const LoginPath = "/login"

// SessionLoader resolves a session id to a live session.
type SessionLoader interface {
	Get(ctx context.Context, id string) (models.Session, error)
}

// RequireSession loads the session named by the cookie once and stores it in
// the request context. Requests without a live session are redirected to
// the login page and their cookie is cleared.
func RequireSession(sessions SessionLoader, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			sess, err := sessions.Get(r.Context(), c.Value)
			if err != nil {
				log.Debug("session rejected", zap.Error(err))
				ClearSessionCookie(w)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), &sess)))
		})
	}
}

// RequireRole sends sessions of any other role to their own landing page.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if sess.Role != role {
				http.Redirect(w, r, sess.Role.Home(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie issues the session cookie for s.
func SetSessionCookie(w http.ResponseWriter, s models.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
