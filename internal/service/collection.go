package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/export"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// Remote is the asset API surface of one entity.
type Remote[T grid.Record, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id string, in In) (T, error)
	Delete(ctx context.Context, id string) error
}

// Deactivator is implemented by remotes whose rows can be deactivated.
type Deactivator[T grid.Record] interface {
	Deactivate(ctx context.Context, row T) (T, error)
}

// ColumnsFunc builds the column registry of an entity for rows as seen by v.
type ColumnsFunc[T grid.Record] func(rows []T, v viewer.Viewer) []grid.Column[T]

// Collection keeps Boards of one entity in sync with its Remote.
type Collection[T grid.Record, In any] struct {
	// Name is used in export file names and log fields.
	Name    string
	remote  Remote[T, In]
	columns ColumnsFunc[T]
	merge   func(old, updated T) T
	log     *zap.Logger
	now     func() time.Time
}

// CollectionOption configures a Collection.
type CollectionOption[T grid.Record, In any] func(*Collection[T, In])

// WithMerge fills an updated row from the cached one before it is stored.
func WithMerge[T grid.Record, In any](merge func(old, updated T) T) CollectionOption[T, In] {
	return func(c *Collection[T, In]) { c.merge = merge }
}

// NewCollection constructs a Collection.
func NewCollection[T grid.Record, In any](
	name string,
	remote Remote[T, In],
	columns ColumnsFunc[T],
	log *zap.Logger,
	opts ...CollectionOption[T, In],
) *Collection[T, In] {
	c := &Collection[T, In]{
		Name:    name,
		remote:  remote,
		columns: columns,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Columns returns the column registry for rows.
func (c *Collection[T, In]) Columns(rows []T, v viewer.Viewer) []grid.Column[T] {
	return c.columns(rows, v)
}

// Load fetches the rows into b. With refresh unset, an already loaded
// board is kept as is. A missing token loads an empty list.
func (c *Collection[T, In]) Load(ctx context.Context, b *Board[T], refresh bool) error {
	if !refresh && b.Loaded() {
		return nil
	}
	rows, err := c.remote.List(ctx)
	if errors.Is(err, api.ErrNoToken) {
		b.replace(nil)
		return nil
	}
	if err != nil {
		return err
	}
	b.replace(rows)
	return nil
}

// Create adds a row remotely and merges the result into b.
func (c *Collection[T, In]) Create(ctx context.Context, b *Board[T], in In) (T, error) {
	row, err := c.remote.Create(ctx, in)
	if err != nil {
		var zero T
		return zero, err
	}
	b.upsert(row)
	return row, nil
}

// Update overwrites the row with id remotely and merges the result into b.
func (c *Collection[T, In]) Update(ctx context.Context, b *Board[T], id string, in In) (T, error) {
	row, err := c.remote.Update(ctx, id, in)
	if err != nil {
		var zero T
		return zero, err
	}
	if old, ok := b.Get(id); ok && c.merge != nil {
		row = c.merge(old, row)
	}
	b.upsert(row)
	return row, nil
}

// Delete removes the row with id remotely and from b.
func (c *Collection[T, In]) Delete(ctx context.Context, b *Board[T], id string) error {
	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}
	b.remove(id)
	return nil
}

// Bulk returns the bulk-action handler for the selection of b.
func (c *Collection[T, In]) Bulk(b *Board[T], v viewer.Viewer) grid.BulkHandler[T] {
	return bulk[T, In]{c: c, b: b, v: v}
}

// Deactivatable reports whether rows of this collection can be deactivated.
func (c *Collection[T, In]) Deactivatable() bool {
	_, ok := c.remote.(Deactivator[T])
	return ok
}

type bulk[T grid.Record, In any] struct {
	c *Collection[T, In]
	b *Board[T]
	v viewer.Viewer
}

// DeleteAll deletes rows one by one. Failures do not stop the remaining
// calls; they are joined into the returned error.
func (h bulk[T, In]) DeleteAll(ctx context.Context, rows []T) (int, error) {
	var (
		errs []error
		done []string
	)
	for _, r := range rows {
		if err := h.c.remote.Delete(ctx, r.RowID()); err != nil {
			h.c.log.Warn("bulk delete failed", zap.String("entity", h.c.Name), zap.String("id", r.RowID()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		done = append(done, r.RowID())
	}
	h.b.remove(done...)
	if len(done) == 0 {
		h.b.ClearSelection()
	}
	return len(done), errors.Join(errs...)
}

// ExportAll writes rows to a workbook.
func (h bulk[T, In]) ExportAll(_ context.Context, rows []T) (*bytes.Buffer, string, error) {
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("export %s: nothing selected", h.c.Name)
	}
	return export.Workbook(h.c.Name, h.c.columns(rows, h.v), rows, h.c.now())
}

// DeactivateAll deactivates rows one by one and merges the results.
func (h bulk[T, In]) DeactivateAll(ctx context.Context, rows []T) (int, error) {
	d, ok := h.c.remote.(Deactivator[T])
	if !ok {
		return 0, fmt.Errorf("deactivate %s: %w", h.c.Name, errors.ErrUnsupported)
	}
	var (
		errs    []error
		updated []T
	)
	for _, r := range rows {
		row, err := d.Deactivate(ctx, r)
		if err != nil {
			h.c.log.Warn("bulk deactivate failed", zap.String("entity", h.c.Name), zap.String("id", r.RowID()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		updated = append(updated, row)
	}
	h.b.mergeAll(updated)
	return len(updated), errors.Join(errs...)
}
