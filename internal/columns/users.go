package columns

import (
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// Users returns the member registry.
func Users(v viewer.Viewer) []grid.Column[models.Member] {
	return []grid.Column[models.Member]{
		{Key: "fullName", Label: "Full Name"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone Number", Render: func(m models.Member) grid.Cell {
			return grid.TextCell(orPlaceholder(m.Phone))
		}},
		{Key: "status", Label: "Status", Render: func(m models.Member) grid.Cell {
			return grid.BadgeCell(m.Status, StatusVariant(m.Status))
		}},
		{Key: "createdAt", Label: "Joined Date", Render: func(m models.Member) grid.Cell {
			return grid.TextCell(v.FormatDate(m.CreatedAt))
		}},
	}
}
