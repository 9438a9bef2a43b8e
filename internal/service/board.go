package service

import (
	"sync"

	"github.com/atinyakov/AssetDesk/internal/cache"
	"github.com/atinyakov/AssetDesk/internal/grid"
)

// Board is one grid's server-side state for a browser session: the loaded
// rows plus the current page and selection.
type Board[T grid.Record] struct {
	mu    sync.Mutex
	list  *cache.List[T]
	state grid.State
}

// NewBoard returns an unloaded board that inserts new rows at p.
func NewBoard[T grid.Record](p cache.Placement) *Board[T] {
	return &Board[T]{list: cache.NewList[T](p)}
}

// Loaded reports whether the rows were fetched since the board was created.
func (b *Board[T]) Loaded() bool {
	return b.list.Loaded()
}

// Rows returns a copy of the loaded rows.
func (b *Board[T]) Rows() []T {
	return b.list.All()
}

// Len returns the number of loaded rows.
func (b *Board[T]) Len() int {
	return b.list.Len()
}

// Get looks up a loaded row.
func (b *Board[T]) Get(id string) (T, bool) {
	return b.list.Get(id)
}

// View renders the current page. An unloaded board renders as loading.
func (b *Board[T]) View(cols []grid.Column[T], opts grid.Options) grid.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grid.Build(b.list.All(), cols, !b.list.Loaded(), &b.state, opts)
}

// SetPage moves to page, clamped to the loaded rows.
func (b *Board[T]) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Page = grid.Clamp(page, b.list.Len())
}

// Toggle flips the selection of the row at absolute index i.
func (b *Board[T]) Toggle(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < b.list.Len() {
		b.state.Selection.Toggle(i)
	}
}

// ToggleAll selects every loaded row, or clears a full selection.
func (b *Board[T]) ToggleAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.list.Len()
	b.state.Selection.Prune(n)
	b.state.Selection.ToggleAll(n)
}

// Selected materializes the selected rows.
func (b *Board[T]) Selected() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grid.Selected(b.list.All(), &b.state.Selection)
}

// ClearSelection empties the selection.
func (b *Board[T]) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Selection.Clear()
}

func (b *Board[T]) replace(rows []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.list.Replace(rows)
	b.state = grid.State{Page: 1}
}

// upsert merges row.
func (b *Board[T]) upsert(row T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.list.Upsert(row) {
		b.afterInsert()
	}
}

func (b *Board[T]) mergeAll(rows []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	before := b.list.Len()
	b.list.MergeAll(rows)
	if b.list.Len() != before {
		b.afterInsert()
	}
}

// afterInsert keeps the selection valid once rows were inserted. Appending
// leaves existing indices in place; prepending shifts all of them.
func (b *Board[T]) afterInsert() {
	if b.list.Placement() == cache.Append {
		b.state.Selection.Prune(b.list.Len())
		return
	}
	b.state.Selection.Clear()
}

func (b *Board[T]) remove(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := false
	for _, id := range ids {
		removed = b.list.Remove(id) || removed
	}
	if removed {
		b.state.Selection.Clear()
		b.state.Page = grid.Clamp(b.state.Page, b.list.Len())
	}
}
