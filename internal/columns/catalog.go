package columns

import (
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

type catalogRow interface {
	grid.Record
	models.Category | models.Department
}

func catalog[T catalogRow](v viewer.Viewer) []grid.Column[T] {
	return []grid.Column[T]{
		{Key: "name", Label: "Name"},
		{Key: "description", Label: "Description", Render: func(row T) grid.Cell {
			return grid.TextCell(orPlaceholder(grid.Stringify(row.Field("description"))))
		}},
		{Key: "created_at", Label: "Created At", Render: func(row T) grid.Cell {
			return grid.TextCell(v.FormatDateTime(grid.Stringify(row.Field("created_at"))))
		}},
	}
}

// Categories returns the category registry.
func Categories(v viewer.Viewer) []grid.Column[models.Category] {
	return catalog[models.Category](v)
}

// Departments returns the department registry.
func Departments(v viewer.Viewer) []grid.Column[models.Department] {
	return catalog[models.Department](v)
}
