package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/session"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// pages holds what every authenticated page needs.
type pages struct {
	Views      *Renderer
	Workspaces *service.Workspaces
	Log        *zap.Logger
}

// workspace returns the workspace of the session in r. Callers sit behind
// RequireSession.
func (p pages) workspace(r *http.Request) *service.Workspace {
	sess, _ := session.FromContext(r.Context())
	id := ""
	if sess != nil {
		id = sess.ID
	}
	return p.Workspaces.Get(id)
}

// render shows a page in the layout of the signed-in role and consumes the
// pending flash message.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	pg := Page{
		Title: title,
		Path:  r.URL.Path,
		Lang:  viewer.FromRequest(r).Language(),
		Data:  data,
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		pg.Menu = MenuFor(sess.Role)
		pg.Email = sess.Email
		pg.Alert = p.workspace(r).TakeFlash()
	}
	if err := p.Views.Page(w, status, name, pg); err != nil {
		p.Log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

// pageParam reads ?page=N, defaulting to 1.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
