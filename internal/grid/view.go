package grid

// RenderState is one of the three mutually exclusive grid displays.
type RenderState int

const (
	// Loading shows a progress indicator instead of rows.
	Loading RenderState = iota
	// Empty shows the no-data placeholder.
	Empty
	// Populated shows the table.
	Populated
)

func (s RenderState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	default:
		return "populated"
	}
}

// Placeholder texts of the non-populated states.
const (
	LoadingText = "Loading data..."
	EmptyText   = "No data available"
)

// State is the per-grid view state kept between requests.
type State struct {
	// Page is the 1-based current page.
	Page int
	// Selection holds absolute row indices.
	Selection Selection
}

// Actions selects the per-row buttons.
type Actions struct {
	View   bool
	Edit   bool
	Delete bool
}

// Any reports whether the actions column is shown.
func (a Actions) Any() bool { return a.View || a.Edit || a.Delete }

// BulkActions selects the buttons of the floating selection bar.
type BulkActions struct {
	Delete     bool
	Export     bool
	Deactivate bool
}

// Options configures Build.
type Options struct {
	Actions    Actions
	Bulk       BulkActions
	Selectable bool
}

// Header is one column header.
type Header struct {
	Key   string
	Label string
}

// RowView is one rendered row.
type RowView struct {
	// Index is the absolute position in the full dataset.
	Index    int
	ID       string
	Selected bool
	Cells    []Cell
}

// View is the render-ready model of a grid.
type View struct {
	State         RenderState
	Headers       []Header
	Rows          []RowView
	Total         int
	Page          int
	TotalPages    int
	SelectedCount int
	AllSelected   bool
	Selectable    bool
	Actions       Actions
	Bulk          BulkActions
}

// Loading reports whether the loading indicator is shown.
func (v View) Loading() bool { return v.State == Loading }

// Empty reports whether the empty placeholder is shown.
func (v View) Empty() bool { return v.State == Empty }

// Populated reports whether rows are shown.
func (v View) Populated() bool { return v.State == Populated }

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// PrevPage returns the previous page number, clamped to 1.
func (v View) PrevPage() int { return max(v.Page-1, 1) }

// NextPage returns the next page number, clamped to the last page.
func (v View) NextPage() int { return min(v.Page+1, max(v.TotalPages, 1)) }

// ShowPagination reports whether the pagination bar is shown.
func (v View) ShowPagination() bool { return v.TotalPages > 1 }

// ShowBulkBar reports whether the floating bulk-action bar is shown.
func (v View) ShowBulkBar() bool { return v.SelectedCount > 0 }

// Build renders rows into a View for the current page of st.
func Build[T Record](rows []T, cols []Column[T], loading bool, st *State, opts Options) View {
	if st == nil {
		st = &State{}
	}
	v := View{
		Headers:    make([]Header, 0, len(cols)),
		Total:      len(rows),
		TotalPages: TotalPages(len(rows)),
		Selectable: opts.Selectable,
		Actions:    opts.Actions,
		Bulk:       opts.Bulk,
	}
	for _, c := range cols {
		v.Headers = append(v.Headers, Header{Key: c.Key, Label: c.Label})
	}

	switch {
	case loading:
		v.State = Loading
		v.Page = 1
		return v
	case len(rows) == 0:
		v.State = Empty
		v.Page = 1
		return v
	}

	v.State = Populated
	v.Page = Clamp(st.Page, len(rows))
	v.SelectedCount = st.Selection.Len()
	v.AllSelected = v.SelectedCount == len(rows)

	start, _ := PageBounds(v.Page, len(rows))
	visible := PageRows(rows, v.Page)
	v.Rows = make([]RowView, 0, len(visible))
	for j, row := range visible {
		i := start + j
		rv := RowView{
			Index:    i,
			ID:       row.RowID(),
			Selected: st.Selection.Has(i),
			Cells:    make([]Cell, 0, len(cols)),
		}
		for _, c := range cols {
			rv.Cells = append(rv.Cells, CellFor(c, row))
		}
		v.Rows = append(v.Rows, rv)
	}
	return v
}
