package columns

import (
	"fmt"

	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// FormatCost renders a cost as dollars with two decimals.
func FormatCost(cost float64) string {
	return fmt.Sprintf("$%.2f", cost)
}

// Costs extracts the cost of every asset.
func Costs(rows []models.Asset) []float64 {
	out := make([]float64, len(rows))
	for i, a := range rows {
		out[i] = float64(a.Cost)
	}
	return out
}

// CostVariant flags costs above the median of the current dataset.
func CostVariant(cost, median float64) grid.Variant {
	if cost > median {
		return grid.VariantSecondary
	}
	return grid.VariantDefault
}

// Assets returns the asset registry. The cost badge compares each row with
// the median cost of rows, so it must be rebuilt whenever rows change.
func Assets(rows []models.Asset, v viewer.Viewer) []grid.Column[models.Asset] {
	median := Median(Costs(rows))
	return []grid.Column[models.Asset]{
		{Key: "name", Label: "Asset Name"},
		{Key: "category_name", Label: "Category"},
		{Key: "department_name", Label: "Department"},
		{Key: "date_purchased", Label: "Date Purchased", Render: func(a models.Asset) grid.Cell {
			return grid.TextCell(v.FormatDate(a.DatePurchased))
		}},
		{Key: "cost", Label: "Cost", Render: func(a models.Asset) grid.Cell {
			cost := float64(a.Cost)
			return grid.BadgeCell(FormatCost(cost), CostVariant(cost, median))
		}},
		{Key: "created_by_name", Label: "Created By"},
		{Key: "created_at", Label: "Created At", Render: func(a models.Asset) grid.Cell {
			return grid.TextCell(v.FormatDate(a.CreatedAt))
		}},
	}
}
