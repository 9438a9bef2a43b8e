package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/cache"
	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/columns"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// Workspace is the view state of one browser session.
type Workspace struct {
	Assets      *Board[models.Asset]
	Categories  *Board[models.Category]
	Departments *Board[models.Department]
	Users       *Board[models.Member]

	mu      sync.Mutex
	flash   string
	touched time.Time
}

func newWorkspace(now time.Time) *Workspace {
	return &Workspace{
		Assets:      NewBoard[models.Asset](cache.Prepend),
		Categories:  NewBoard[models.Category](cache.Append),
		Departments: NewBoard[models.Department](cache.Append),
		Users:       NewBoard[models.Member](cache.Append),
		touched:     now,
	}
}

// Flash stores a one-shot message for the next rendered page.
func (w *Workspace) Flash(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flash = msg
}

// TakeFlash returns and clears the pending message.
func (w *Workspace) TakeFlash() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.flash
	w.flash = ""
	return msg
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.touched = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touched
}

// Workspaces holds the workspace of every active session in memory.
type Workspaces struct {
	mu   sync.Mutex
	byID map[string]*Workspace
	idle time.Duration
	now  func() time.Time
}

// NewWorkspaces returns an empty registry. Workspaces untouched for idle are
// dropped by DeleteExpired.
func NewWorkspaces(idle time.Duration) *Workspaces {
	return &Workspaces{byID: make(map[string]*Workspace), idle: idle, now: time.Now}
}

// Get returns the workspace of session id, creating it on first use.
func (ws *Workspaces) Get(id string) *Workspace {
	now := ws.now()
	ws.mu.Lock()
	w, ok := ws.byID[id]
	if !ok {
		w = newWorkspace(now)
		ws.byID[id] = w
	}
	ws.mu.Unlock()
	w.touch(now)
	return w
}

// Drop discards the workspace of session id.
func (ws *Workspaces) Drop(id string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.byID, id)
}

// DeleteExpired drops workspaces idle since before now minus the idle window.
func (ws *Workspaces) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-ws.idle)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	var removed int64
	for id, w := range ws.byID {
		if w.idleSince().Before(cutoff) {
			delete(ws.byID, id)
			removed++
		}
	}
	return removed, nil
}

// Collections groups the four managed entities.
type Collections struct {
	Assets      *Collection[models.Asset, models.AssetInput]
	Categories  *Collection[models.Category, models.CatalogInput]
	Departments *Collection[models.Department, models.CatalogInput]
	Users       *Collection[models.Member, models.UserInput]
}

// NewCollections wires every entity to its asset API endpoints.
func NewCollections(c *api.Client, log *zap.Logger) *Collections {
	return &Collections{
		Assets: NewCollection[models.Asset, models.AssetInput](
			"assets", c.Assets(), columns.Assets, log),
		Categories: NewCollection[models.Category, models.CatalogInput](
			"categories", c.Categories(), ignoreRows(columns.Categories), log,
			WithMerge[models.Category, models.CatalogInput](mergeCategory)),
		Departments: NewCollection[models.Department, models.CatalogInput](
			"departments", c.Departments(), ignoreRows(columns.Departments), log,
			WithMerge[models.Department, models.CatalogInput](mergeDepartment)),
		Users: NewCollection[models.Member, models.UserInput](
			"users", c.Users(), ignoreRows(columns.Users), log,
			WithMerge[models.Member, models.UserInput](mergeMember)),
	}
}

func ignoreRows[T grid.Record](f func(viewer.Viewer) []grid.Column[T]) ColumnsFunc[T] {
	return func(_ []T, v viewer.Viewer) []grid.Column[T] { return f(v) }
}

// mergeMember keeps the status and join date of the cached row when the
// update response did not carry them.
func mergeMember(old, updated models.Member) models.Member {
	if updated.Status == "" {
		updated.Status = old.Status
	}
	if updated.CreatedAt == "" {
		updated.CreatedAt = old.CreatedAt
	}
	return updated
}

// mergeCategory keeps the creation date when the update response was
// rebuilt from the form.
func mergeCategory(old, updated models.Category) models.Category {
	if updated.CreatedAt == "" {
		updated.CreatedAt = old.CreatedAt
	}
	return updated
}

func mergeDepartment(old, updated models.Department) models.Department {
	if updated.CreatedAt == "" {
		updated.CreatedAt = old.CreatedAt
	}
	return updated
}
