package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/metrics"
	"github.com/atinyakov/AssetDesk/internal/middleware"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/service"
)

// Sessions combines sign-in with the per-request session lookup.
type Sessions interface {
	SessionService
	middleware.SessionLoader
}

// Deps are the services the router is built from.
type Deps struct {
	Sessions    Sessions
	Workspaces  *service.Workspaces
	Collections *service.Collections
	Stats       StatsSource
	Mine        AssetLister
	Users       UserGetter
	Views       *Renderer
	Limiter     *middleware.RateLimiter
	Metrics     *metrics.Metrics
	Log         *zap.Logger
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// TrustProxy replaces the peer address with the forwarded client
	// address, which the login limiter then keys on.
	TrustProxy bool
}

// NewRouter builds the dashboard's handler tree.
//
// Routes:
//
//	GET  /healthz, /metrics       public
//	GET  /login, POST /login      public, sign-in attempts rate limited
//	POST /logout                  any session
//	     /settings, /user/...     any session
//	     /admin/...               admin sessions only
//
// Middleware chain: RealIP (with TrustProxy), Recoverer, RequestID, request logging and
// request metrics.
func NewRouter(d Deps) http.Handler {
	p := pages{Views: d.Views, Workspaces: d.Workspaces, Log: d.Log}
	auth := &AuthHandler{
		Sessions:     d.Sessions,
		Workspaces:   d.Workspaces,
		Views:        d.Views,
		Log:          d.Log,
		CookieSecure: d.CookieSecure,
	}
	home := &HomeHandler{pages: p, Stats: d.Stats, Mine: d.Mine}
	entities := NewEntities(p, d.Collections, d.Users)

	r := chi.NewRouter()
	if d.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogging(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Get(middleware.LoginPath, auth.LoginForm)
	login := http.Handler(http.HandlerFunc(auth.Login))
	if d.Limiter != nil {
		login = d.Limiter.Handler(login)
	}
	r.Method(http.MethodPost, middleware.LoginPath, login)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions, d.Log))

		r.Post("/logout", auth.Logout)
		r.Get("/settings", home.Settings)
		r.Post("/settings", home.SaveSettings)

		r.Route("/user", func(r chi.Router) {
			r.Get("/home", home.UserHome)
			r.Get("/assets", home.MyAssets)
			r.Get("/profile", home.Profile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/home", home.AdminHome)
			r.Route("/assets", entities.Assets.Routes)
			r.Route("/categories", entities.Categories.Routes)
			r.Route("/departments", entities.Departments.Routes)
			r.Route("/users", entities.Users.Routes)
		})
	})

	return r
}
