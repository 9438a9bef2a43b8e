package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"loadingText": func() string { return grid.LoadingText },
	"emptyText":   func() string { return grid.EmptyText },
}

// MenuItem is one sidebar entry. Entries with children are group headings.
type MenuItem struct {
	Title    string
	Href     string
	Children []MenuItem
}

var adminMenu = []MenuItem{
	{Title: "Dashboard", Href: "/admin/home"},
	{Title: "Users", Children: []MenuItem{
		{Title: "Manage Users", Href: "/admin/users"},
	}},
	{Title: "Assets", Children: []MenuItem{
		{Title: "Manage Category", Href: "/admin/categories"},
		{Title: "Manage Assets", Href: "/admin/assets"},
	}},
	{Title: "Departments", Children: []MenuItem{
		{Title: "Manage Departments", Href: "/admin/departments"},
	}},
	{Title: "Settings", Href: "/settings"},
}

var userMenu = []MenuItem{
	{Title: "Dashboard", Href: "/user/home"},
	{Title: "Assets", Children: []MenuItem{
		{Title: "My Assets", Href: "/user/assets"},
	}},
	{Title: "Profile", Href: "/user/profile"},
	{Title: "Settings", Href: "/settings"},
}

// MenuFor returns the sidebar of role.
func MenuFor(role models.Role) []MenuItem {
	if role == models.RoleAdmin {
		return adminMenu
	}
	return userMenu
}

// Page is the data every full page is rendered with.
type Page struct {
	Title string
	Menu  []MenuItem
	// Path marks the active menu entry.
	Path  string
	Email string
	// Alert is shown in a blocking dialog.
	Alert string
	Lang  string
	Data  any
}

// GridData drives the "grid" template.
type GridData struct {
	// Base is the path the selection, paging and row actions post to.
	Base string
	// Src is set on a loading shell; the fragment at Src replaces it.
	Src  string
	View grid.View
	// Interactive grids page and select through POST forms; the others
	// page through ?page= links.
	Interactive bool
	Alert       string
}

// Field is one input of an entity form.
type Field struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Error   string
	Step    string
	Options []Option
}

// Option is one choice of a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// DetailRow is one labelled value on a detail page.
type DetailRow struct {
	Label string
	Value string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// NewRenderer parses the layout and every page template.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/grid.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(templateFS, "templates/page_*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		key := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), "page_"), ".html")
		pages[key] = t
	}
	return &Renderer{base: base, pages: pages}, nil
}

// Page renders the named page inside the layout.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return write(w, status, t, "layout", p)
}

// Grid renders the grid fragment alone.
func (r *Renderer) Grid(w http.ResponseWriter, status int, g GridData) error {
	return write(w, status, r.base, "grid", g)
}

func write(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
