// Package grid implements a generic paginated, multi-selectable table.
//
// A grid is driven by an ordered list of rows and an ordered list of column
// descriptors. It does not fetch or mutate data: Build turns rows, columns
// and the per-page State into a View that templates and the terminal client
// render, and the owning page reacts to selection and row actions.
package grid

import "fmt"

// Record is a row the grid can display.
type Record interface {
	// RowID returns the identifier that is unique within a list.
	RowID() string
	// Field returns the raw value stored under key, or nil when absent.
	Field(key string) any
}

// Variant is the visual style of a badge cell.
type Variant string

const (
	// VariantDefault is the positive badge style.
	VariantDefault Variant = "default"
	// VariantSecondary is the neutral badge style.
	VariantSecondary Variant = "secondary"
	// VariantDestructive is the negative badge style.
	VariantDestructive Variant = "destructive"
)

// Tone names the meaning conveyed by a badge variant.
func (v Variant) Tone() string {
	switch v {
	case VariantSecondary:
		return "neutral"
	case VariantDestructive:
		return "negative"
	case VariantDefault:
		return "positive"
	}
	return ""
}

// Cell is one rendered table cell. A cell with a Variant is shown as a badge.
type Cell struct {
	Text    string
	Variant Variant
}

// Badge reports whether the cell renders as a badge.
func (c Cell) Badge() bool { return c.Variant != "" }

// TextCell returns a plain text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// BadgeCell returns a badge cell.
func BadgeCell(s string, v Variant) Cell { return Cell{Text: s, Variant: v} }

// Column describes how one field of T is labelled and displayed.
type Column[T Record] struct {
	// Key is the field passed to Record.Field.
	Key string
	// Label is the header text.
	Label string
	// Render overrides the default string coercion when set.
	Render func(row T) Cell
}

// CellFor renders the cell of row for col.
func CellFor[T Record](col Column[T], row T) Cell {
	if col.Render != nil {
		return col.Render(row)
	}
	return TextCell(Stringify(row.Field(col.Key)))
}

// Stringify coerces a field value to its display text. Nil becomes the empty
// string, everything else is formatted with fmt.Sprint.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
