package grid

import "sort"

// Selection is a set of absolute row indices into the full dataset.
// The zero value is an empty selection.
type Selection struct {
	set map[int]struct{}
}

// Toggle flips the membership of index i.
func (s *Selection) Toggle(i int) {
	if i < 0 {
		return
	}
	if s.set == nil {
		s.set = make(map[int]struct{})
	}
	if _, ok := s.set[i]; ok {
		delete(s.set, i)
		return
	}
	s.set[i] = struct{}{}
}

// ToggleAll clears the selection when every one of the n rows is selected,
// otherwise it selects all n rows.
func (s *Selection) ToggleAll(n int) {
	if s.Len() == n {
		s.Clear()
		return
	}
	s.set = make(map[int]struct{}, n)
	for i := range n {
		s.set[i] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.set = nil }

// Has reports whether index i is selected.
func (s *Selection) Has(i int) bool {
	_, ok := s.set[i]
	return ok
}

// Len returns the number of selected indices.
func (s *Selection) Len() int { return len(s.set) }

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.set))
	for i := range s.set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Prune drops indices that no longer address one of n rows.
func (s *Selection) Prune(n int) {
	for i := range s.set {
		if i >= n {
			delete(s.set, i)
		}
	}
}

// Selected materializes the selected rows in ascending index order.
func Selected[T any](rows []T, sel *Selection) []T {
	out := make([]T, 0, sel.Len())
	for _, i := range sel.Indices() {
		if i < len(rows) {
			out = append(out, rows[i])
		}
	}
	return out
}
