package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/export"
	"github.com/atinyakov/AssetDesk/internal/forms"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// EntityHandler serves the management pages of one entity: the grid, its
// selection and paging, the create/edit forms, deletes and bulk actions.
type EntityHandler[T grid.Record, In any] struct {
	pages
	// Slug is the path segment under /admin.
	Slug     string
	Singular string
	Plural   string

	Collection *service.Collection[T, In]
	Board      func(*service.Workspace) *service.Board[T]
	Decode     func(v url.Values, creating bool) (In, forms.Errors)
	// Values prefills the edit form from a row.
	Values func(T) url.Values
	// Fields lays out the form for the posted or prefilled values.
	Fields func(ctx context.Context, ws *service.Workspace, v url.Values, errs forms.Errors, creating bool) []Field
	// Label names a row in confirmations.
	Label func(T) string
	// Detail lists the values shown on the view page.
	Detail  func(ctx context.Context, row T, v viewer.Viewer) ([]DetailRow, error)
	Options grid.Options
}

func (h *EntityHandler[T, In]) base() string {
	return "/admin/" + h.Slug
}

func (h *EntityHandler[T, In]) lower() string {
	return strings.ToLower(h.Singular)
}

// Routes mounts the handler's endpoints.
func (h *EntityHandler[T, In]) Routes(r chi.Router) {
	r.Get("/", h.Shell)
	r.Get("/grid", h.Grid)
	r.Post("/select", h.Select)
	r.Post("/select-all", h.SelectAll)
	r.Post("/page", h.Page)
	r.Post("/bulk/delete", h.BulkDelete)
	r.Post("/bulk/export", h.BulkExport)
	r.Post("/bulk/deactivate", h.BulkDeactivate)
	r.Get("/new", h.New)
	r.Post("/", h.Create)
	r.Get("/{id}", h.View)
	r.Get("/{id}/edit", h.Edit)
	r.Post("/{id}", h.Update)
	r.Get("/{id}/delete", h.ConfirmDelete)
	r.Post("/{id}/delete", h.Delete)
}

func (h *EntityHandler[T, In]) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.base()+"?keep=1", http.StatusSeeOther)
}

func (h *EntityHandler[T, In]) heading(b *service.Board[T]) string {
	if b.Loaded() {
		return fmt.Sprintf("Manage %s (%d)", h.Plural, b.Len())
	}
	return "Manage " + h.Plural
}

func (h *EntityHandler[T, In]) gridData(r *http.Request, b *service.Board[T]) GridData {
	rows := b.Rows()
	return GridData{
		Base:        h.base(),
		View:        b.View(h.Collection.Columns(rows, viewer.FromRequest(r)), h.Options),
		Interactive: true,
	}
}

// Shell renders the page with the grid in its loading state; the grid
// fragment is fetched right after. With ?inline=1 the rows are loaded
// and shown directly.
func (h *EntityHandler[T, In]) Shell(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	b := h.Board(ws)
	keep := r.URL.Query().Get("keep") == "1"

	var g GridData
	if r.URL.Query().Get("inline") == "1" {
		if err := h.Collection.Load(r.Context(), b, !keep); err != nil {
			h.Log.Warn("failed to load rows", zap.String("entity", h.Slug), zap.Error(err))
			ws.Flash(api.UserMessage(err, "Failed to load "+h.Slug))
		}
		g = h.gridData(r, b)
	} else {
		g = GridData{
			Base:        h.base(),
			Src:         h.base() + "/grid",
			View:        grid.Build[T](nil, h.Collection.Columns(nil, viewer.FromRequest(r)), true, nil, h.Options),
			Interactive: true,
		}
		if keep {
			g.Src += "?keep=1"
		}
	}

	h.render(w, r, http.StatusOK, "entity", h.heading(b), struct {
		Heading  string
		Singular string
		Grid     GridData
	}{h.heading(b), h.Singular, g})
}

// Grid renders the grid fragment. It fetches the rows unless keep=1 asks
// for the rows already merged into the workspace.
func (h *EntityHandler[T, In]) Grid(w http.ResponseWriter, r *http.Request) {
	b := h.Board(h.workspace(r))
	keep := r.URL.Query().Get("keep") == "1"

	var alert string
	if err := h.Collection.Load(r.Context(), b, !keep); err != nil {
		h.Log.Warn("failed to load rows", zap.String("entity", h.Slug), zap.Error(err))
		alert = api.UserMessage(err, "Failed to load "+h.Slug)
	}

	g := h.gridData(r, b)
	g.Alert = alert
	if g.View.Loading() {
		g.View.State = grid.Empty
	}
	if err := h.Views.Grid(w, http.StatusOK, g); err != nil {
		h.Log.Error("render grid", zap.Error(err))
	}
}

func formInt(r *http.Request, key string) (int, bool) {
	if err := r.ParseForm(); err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(r.PostForm.Get(key))
	return n, err == nil
}

// Select toggles the row at the posted absolute index.
func (h *EntityHandler[T, In]) Select(w http.ResponseWriter, r *http.Request) {
	if i, ok := formInt(r, "index"); ok {
		h.Board(h.workspace(r)).Toggle(i)
	}
	h.redirect(w, r)
}

// SelectAll selects every row, or clears a full selection.
func (h *EntityHandler[T, In]) SelectAll(w http.ResponseWriter, r *http.Request) {
	h.Board(h.workspace(r)).ToggleAll()
	h.redirect(w, r)
}

// Page moves to the posted page.
func (h *EntityHandler[T, In]) Page(w http.ResponseWriter, r *http.Request) {
	if p, ok := formInt(r, "page"); ok {
		h.Board(h.workspace(r)).SetPage(p)
	}
	h.redirect(w, r)
}

func (h *EntityHandler[T, In]) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, v url.Values, errs forms.Errors) {
	ws := h.workspace(r)
	creating := id == ""
	heading, action, submit := "Add "+h.Singular, h.base(), "Create "+h.Singular
	if !creating {
		heading, action, submit = "Edit "+h.Singular, h.base()+"/"+url.PathEscape(id), "Update "+h.Singular
	}
	h.render(w, r, status, "form", heading, struct {
		Heading string
		Action  string
		Submit  string
		Cancel  string
		Fields  []Field
	}{heading, action, submit, h.base() + "?keep=1", h.Fields(r.Context(), ws, v, errs, creating)})
}

// find looks up the row named by the {id} parameter, loading the rows
// first when the workspace has none yet.
func (h *EntityHandler[T, In]) find(r *http.Request) (T, string, bool) {
	id := chi.URLParam(r, "id")
	b := h.Board(h.workspace(r))
	if err := h.Collection.Load(r.Context(), b, false); err != nil {
		h.Log.Warn("failed to load rows", zap.String("entity", h.Slug), zap.Error(err))
	}
	row, ok := b.Get(id)
	return row, id, ok
}

// New shows the empty create form.
func (h *EntityHandler[T, In]) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", url.Values{}, nil)
}

// Edit shows the form prefilled from the cached row.
func (h *EntityHandler[T, In]) Edit(w http.ResponseWriter, r *http.Request) {
	row, id, ok := h.find(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.renderForm(w, r, http.StatusOK, id, h.Values(row), nil)
}

// Create validates the form, creates the row and merges it into the grid
// without refetching the list.
func (h *EntityHandler[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	in, errs := h.Decode(r.PostForm, true)
	if errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "", r.PostForm, errs)
		return
	}
	ws := h.workspace(r)
	if _, err := h.Collection.Create(r.Context(), h.Board(ws), in); err != nil {
		h.Log.Warn("create failed", zap.String("entity", h.Slug), zap.Error(err))
		ws.Flash(api.UserMessage(err, "Failed to create "+h.lower()))
		h.renderForm(w, r, http.StatusOK, "", r.PostForm, nil)
		return
	}
	h.redirect(w, r)
}

// Update validates the form, overwrites the row and merges the result.
func (h *EntityHandler[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	in, errs := h.Decode(r.PostForm, false)
	if errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, r.PostForm, errs)
		return
	}
	ws := h.workspace(r)
	if _, err := h.Collection.Update(r.Context(), h.Board(ws), id, in); err != nil {
		h.Log.Warn("update failed", zap.String("entity", h.Slug), zap.String("id", id), zap.Error(err))
		ws.Flash(api.UserMessage(err, "Failed to update "+h.lower()))
		h.renderForm(w, r, http.StatusOK, id, r.PostForm, nil)
		return
	}
	h.redirect(w, r)
}

// ConfirmDelete asks before deleting a row.
func (h *EntityHandler[T, In]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	row, id, ok := h.find(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	heading := "Delete " + h.Singular
	h.render(w, r, http.StatusOK, "confirm", heading, struct {
		Heading string
		Message string
		Action  string
		Cancel  string
	}{
		heading,
		fmt.Sprintf("Are you sure you want to delete %s %q? This cannot be undone.", h.lower(), h.Label(row)),
		h.base() + "/" + url.PathEscape(id) + "/delete",
		h.base() + "?keep=1",
	})
}

// Delete removes one row.
func (h *EntityHandler[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws := h.workspace(r)
	if err := h.Collection.Delete(r.Context(), h.Board(ws), id); err != nil {
		h.Log.Warn("delete failed", zap.String("entity", h.Slug), zap.String("id", id), zap.Error(err))
		ws.Flash(api.UserMessage(err, "Failed to delete "+h.lower()))
	}
	h.redirect(w, r)
}

// View shows one row.
func (h *EntityHandler[T, In]) View(w http.ResponseWriter, r *http.Request) {
	row, _, ok := h.find(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	rows, err := h.Detail(r.Context(), row, viewer.FromRequest(r))
	if err != nil {
		h.Log.Warn("failed to load details", zap.String("entity", h.Slug), zap.Error(err))
		h.workspace(r).Flash(api.UserMessage(err, "Failed to load "+h.lower()+" details"))
	}
	heading := h.Singular + " Details"
	h.render(w, r, http.StatusOK, "detail", heading, struct {
		Heading string
		Rows    []DetailRow
		Back    string
	}{heading, rows, h.base() + "?keep=1"})
}

func (h *EntityHandler[T, In]) bulkResult(ws *service.Workspace, verb string, n int, err error) {
	switch {
	case err != nil && n == 0:
		ws.Flash(api.UserMessage(err, fmt.Sprintf("Failed to %s %s", verb, h.Slug)))
	case err != nil:
		ws.Flash(fmt.Sprintf("%d %s %sd, some failed: %s", n, h.Slug, verb, api.UserMessage(err, "unexpected error")))
	}
}

// BulkDelete deletes every selected row.
func (h *EntityHandler[T, In]) BulkDelete(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	b := h.Board(ws)
	n, err := h.Collection.Bulk(b, viewer.FromRequest(r)).DeleteAll(r.Context(), b.Selected())
	h.bulkResult(ws, "delete", n, err)
	h.redirect(w, r)
}

// BulkDeactivate deactivates every selected row.
func (h *EntityHandler[T, In]) BulkDeactivate(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	b := h.Board(ws)
	n, err := h.Collection.Bulk(b, viewer.FromRequest(r)).DeactivateAll(r.Context(), b.Selected())
	if errors.Is(err, errors.ErrUnsupported) {
		http.NotFound(w, r)
		return
	}
	h.bulkResult(ws, "deactivate", n, err)
	h.redirect(w, r)
}

// BulkExport downloads the selected rows as a workbook.
func (h *EntityHandler[T, In]) BulkExport(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	b := h.Board(ws)
	buf, name, err := h.Collection.Bulk(b, viewer.FromRequest(r)).ExportAll(r.Context(), b.Selected())
	if err != nil {
		h.Log.Warn("export failed", zap.String("entity", h.Slug), zap.Error(err))
		ws.Flash("Failed to export " + h.Slug)
		h.redirect(w, r)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
