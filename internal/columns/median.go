// Package columns holds the per-entity column descriptor registries rendered
// by the dashboard grids.
package columns

import (
	"sort"
	"strings"

	"github.com/atinyakov/AssetDesk/internal/grid"
)

// Median returns the median of values without modifying them. An empty
// slice has median 0.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StatusVariant maps an account status to its badge style. Unrecognized
// values keep the positive style.
func StatusVariant(status string) grid.Variant {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active":
		return grid.VariantDefault
	case "pending":
		return grid.VariantSecondary
	case "inactive":
		return grid.VariantDestructive
	default:
		return grid.VariantDefault
	}
}

// placeholder is shown for optional text fields left empty.
const placeholder = "--"

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
