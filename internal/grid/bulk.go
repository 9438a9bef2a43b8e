package grid

import (
	"bytes"
	"context"
)

// BulkHandler is implemented by pages that wire the selection bar. Each
// method receives the materialized selected rows.
type BulkHandler[T Record] interface {
	// DeleteAll deletes every row and returns how many succeeded.
	DeleteAll(ctx context.Context, rows []T) (int, error)
	// ExportAll writes the rows to a file and returns it with its name.
	ExportAll(ctx context.Context, rows []T) (*bytes.Buffer, string, error)
	// DeactivateAll deactivates every row and returns how many succeeded.
	DeactivateAll(ctx context.Context, rows []T) (int, error)
}
