// Package cache keeps the locally loaded copy of a remote list and patches
// it with single-row results, so pages do not refetch after every write.
package cache

import (
	"sync"

	"github.com/atinyakov/AssetDesk/internal/grid"
)

// Placement decides where a row with a new id is inserted.
type Placement int

const (
	// Append inserts new rows at the end.
	Append Placement = iota
	// Prepend inserts new rows at the front.
	Prepend
)

// Upsert replaces the row with the same id in place, or inserts row at the
// end chosen by p. It reports whether row was inserted. The input slice is
// not modified.
func Upsert[T grid.Record](rows []T, row T, p Placement) ([]T, bool) {
	out := make([]T, 0, len(rows)+1)
	for i, r := range rows {
		if r.RowID() == row.RowID() {
			out = append(out, rows...)
			out[i] = row
			return out, false
		}
	}
	if p == Prepend {
		out = append(out, row)
		return append(out, rows...), true
	}
	out = append(out, rows...)
	return append(out, row), true
}

// Remove filters out every row with id.
func Remove[T grid.Record](rows []T, id string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if r.RowID() != id {
			out = append(out, r)
		}
	}
	return out
}

// List is a concurrency-safe ordered list of rows.
type List[T grid.Record] struct {
	mu        sync.RWMutex
	rows      []T
	loaded    bool
	placement Placement
}

// NewList returns an empty list that inserts new rows at p.
func NewList[T grid.Record](p Placement) *List[T] {
	return &List[T]{placement: p}
}

// Placement returns where the list inserts new rows.
func (l *List[T]) Placement() Placement {
	return l.placement
}

// Replace swaps the whole content, marking the list as loaded.
func (l *List[T]) Replace(rows []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append([]T(nil), rows...)
	l.loaded = true
}

// Loaded reports whether Replace has been called.
func (l *List[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// All returns a copy of the rows.
func (l *List[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.rows...)
}

// Len returns the number of rows.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Get looks up the row with id.
func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.rows {
		if r.RowID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Upsert merges row into the list and reports whether it was inserted.
func (l *List[T]) Upsert(row T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	var inserted bool
	l.rows, inserted = Upsert(l.rows, row, l.placement)
	return inserted
}

// Remove deletes the row with id and reports whether it existed.
func (l *List[T]) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := len(l.rows)
	l.rows = Remove(l.rows, id)
	return len(l.rows) != before
}

// MergeAll upserts every row in order.
func (l *List[T]) MergeAll(rows []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range rows {
		l.rows, _ = Upsert(l.rows, r, l.placement)
	}
}
