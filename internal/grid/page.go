package grid

// PageSize is the fixed number of rows shown per page.
const PageSize = 8

// TotalPages returns the number of pages needed for n rows.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Clamp keeps page within [1, TotalPages(n)]. An empty dataset has page 1.
func Clamp(page, n int) int {
	if last := TotalPages(n); page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageBounds returns the absolute [start, end) row range of page.
func PageBounds(page, n int) (start, end int) {
	page = Clamp(page, n)
	start = (page - 1) * PageSize
	end = min(start+PageSize, n)
	if start > end {
		start = end
	}
	return start, end
}

// PageRows returns the rows visible on page.
func PageRows[T any](rows []T, page int) []T {
	start, end := PageBounds(page, len(rows))
	return rows[start:end]
}
