package http

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/columns"
	"github.com/atinyakov/AssetDesk/internal/forms"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// UserGetter fetches the full record of one account.
type UserGetter interface {
	Get(ctx context.Context, id string) (models.User, error)
}

// Entities are the handlers of the four managed entities.
type Entities struct {
	Assets      *EntityHandler[models.Asset, models.AssetInput]
	Categories  *EntityHandler[models.Category, models.CatalogInput]
	Departments *EntityHandler[models.Department, models.CatalogInput]
	Users       *EntityHandler[models.Member, models.UserInput]
}

var rowActions = grid.Actions{View: true, Edit: true, Delete: true}

func input(name, label, typ string, v url.Values, errs forms.Errors) Field {
	return Field{Name: name, Label: label, Type: typ, Value: v.Get(name), Error: errs[name]}
}

func options(values []string, labels []string, selected string) []Option {
	out := make([]Option, len(values))
	for i := range values {
		out[i] = Option{Value: values[i], Label: labels[i], Selected: values[i] == selected}
	}
	return out
}

func catalogOptions[T grid.Record](rows []T, name func(T) string, selected string) []Option {
	values := make([]string, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i], labels[i] = r.RowID(), name(r)
	}
	return options(values, labels, selected)
}

func describe(d *string) string {
	if d == nil || *d == "" {
		return "--"
	}
	return *d
}

// NewEntities wires the management pages to their collections.
func NewEntities(p pages, c *service.Collections, users UserGetter) *Entities {
	loadCatalogs := func(ctx context.Context, ws *service.Workspace) {
		if err := c.Categories.Load(ctx, ws.Categories, false); err != nil {
			p.Log.Warn("failed to load categories for form", zap.Error(err))
		}
		if err := c.Departments.Load(ctx, ws.Departments, false); err != nil {
			p.Log.Warn("failed to load departments for form", zap.Error(err))
		}
	}

	assets := &EntityHandler[models.Asset, models.AssetInput]{
		pages:      p,
		Slug:       "assets",
		Singular:   "Asset",
		Plural:     "Assets",
		Collection: c.Assets,
		Board:      func(ws *service.Workspace) *service.Board[models.Asset] { return ws.Assets },
		Decode: func(v url.Values, _ bool) (models.AssetInput, forms.Errors) {
			return forms.Asset(v)
		},
		Values: func(a models.Asset) url.Values {
			date := a.DatePurchased
			if len(date) > 10 {
				date = date[:10]
			}
			return url.Values{
				"name":           {a.Name},
				"category_id":    {string(a.CategoryID)},
				"department_id":  {string(a.DepartmentID)},
				"date_purchased": {date},
				"cost":           {strconv.FormatFloat(float64(a.Cost), 'f', 2, 64)},
			}
		},
		Fields: func(ctx context.Context, ws *service.Workspace, v url.Values, errs forms.Errors, _ bool) []Field {
			loadCatalogs(ctx, ws)
			category := input("category_id", "Category", "select", v, errs)
			category.Options = catalogOptions(ws.Categories.Rows(), func(c models.Category) string { return c.Name }, v.Get("category_id"))
			department := input("department_id", "Department", "select", v, errs)
			department.Options = catalogOptions(ws.Departments.Rows(), func(d models.Department) string { return d.Name }, v.Get("department_id"))
			cost := input("cost", "Cost", "number", v, errs)
			cost.Step = "0.01"
			return []Field{
				input("name", "Asset Name", "text", v, errs),
				category,
				department,
				input("date_purchased", "Date Purchased", "date", v, errs),
				cost,
			}
		},
		Label: func(a models.Asset) string { return a.Name },
		Detail: func(_ context.Context, a models.Asset, v viewer.Viewer) ([]DetailRow, error) {
			return []DetailRow{
				{Label: "Asset Name", Value: a.Name},
				{Label: "Category", Value: a.CategoryName},
				{Label: "Department", Value: a.DepartmentName},
				{Label: "Date Purchased", Value: v.FormatDate(a.DatePurchased)},
				{Label: "Cost", Value: columns.FormatCost(float64(a.Cost))},
				{Label: "Created By", Value: a.CreatedByName},
				{Label: "Created At", Value: v.FormatDateTime(a.CreatedAt)},
			}, nil
		},
		Options: grid.Options{
			Actions:    rowActions,
			Bulk:       grid.BulkActions{Delete: true, Export: true},
			Selectable: true,
		},
	}

	catalogFields := func(_ context.Context, _ *service.Workspace, v url.Values, errs forms.Errors, _ bool) []Field {
		return []Field{
			input("name", "Name", "text", v, errs),
			input("description", "Description", "textarea", v, errs),
		}
	}
	catalogDecode := func(v url.Values, _ bool) (models.CatalogInput, forms.Errors) {
		return forms.Catalog(v)
	}
	catalogValues := func(name string, d *string) url.Values {
		out := url.Values{"name": {name}}
		if d != nil {
			out.Set("description", *d)
		}
		return out
	}
	catalogDetail := func(name string, d *string, created string, v viewer.Viewer) []DetailRow {
		return []DetailRow{
			{Label: "Name", Value: name},
			{Label: "Description", Value: describe(d)},
			{Label: "Created At", Value: v.FormatDateTime(created)},
		}
	}
	catalogGrid := grid.Options{
		Actions:    rowActions,
		Bulk:       grid.BulkActions{Delete: true, Export: true},
		Selectable: true,
	}

	categories := &EntityHandler[models.Category, models.CatalogInput]{
		pages:      p,
		Slug:       "categories",
		Singular:   "Category",
		Plural:     "Categories",
		Collection: c.Categories,
		Board:      func(ws *service.Workspace) *service.Board[models.Category] { return ws.Categories },
		Decode:     catalogDecode,
		Values:     func(c models.Category) url.Values { return catalogValues(c.Name, c.Description) },
		Fields:     catalogFields,
		Label:      func(c models.Category) string { return c.Name },
		Detail: func(_ context.Context, c models.Category, v viewer.Viewer) ([]DetailRow, error) {
			return catalogDetail(c.Name, c.Description, c.CreatedAt, v), nil
		},
		Options: catalogGrid,
	}

	departments := &EntityHandler[models.Department, models.CatalogInput]{
		pages:      p,
		Slug:       "departments",
		Singular:   "Department",
		Plural:     "Departments",
		Collection: c.Departments,
		Board:      func(ws *service.Workspace) *service.Board[models.Department] { return ws.Departments },
		Decode:     catalogDecode,
		Values:     func(d models.Department) url.Values { return catalogValues(d.Name, d.Description) },
		Fields:     catalogFields,
		Label:      func(d models.Department) string { return d.Name },
		Detail: func(_ context.Context, d models.Department, v viewer.Viewer) ([]DetailRow, error) {
			return catalogDetail(d.Name, d.Description, d.CreatedAt, v), nil
		},
		Options: catalogGrid,
	}

	roles := []string{string(models.RoleAdmin), string(models.RoleUser)}
	usersHandler := &EntityHandler[models.Member, models.UserInput]{
		pages:      p,
		Slug:       "users",
		Singular:   "User",
		Plural:     "Users",
		Collection: c.Users,
		Board:      func(ws *service.Workspace) *service.Board[models.Member] { return ws.Users },
		Decode:     forms.User,
		Values: func(m models.Member) url.Values {
			return url.Values{
				"first_name": {m.FirstName},
				"last_name":  {m.LastName},
				"email":      {m.Email},
				"phone":      {m.Phone},
				"role":       {string(m.Role)},
				"department": {m.Department},
			}
		},
		Fields: func(ctx context.Context, ws *service.Workspace, v url.Values, errs forms.Errors, creating bool) []Field {
			if err := c.Departments.Load(ctx, ws.Departments, false); err != nil {
				p.Log.Warn("failed to load departments for form", zap.Error(err))
			}
			role := input("role", "Role", "select", v, errs)
			role.Options = options(roles, []string{"Admin", "User"}, v.Get("role"))

			department := input("department", "Department", "text", v, errs)
			if rows := ws.Departments.Rows(); len(rows) > 0 {
				names := make([]string, len(rows))
				for i, d := range rows {
					names[i] = d.Name
				}
				department.Options = options(names, names, v.Get("department"))
			}

			fields := []Field{
				input("first_name", "First Name", "text", v, errs),
				input("last_name", "Last Name", "text", v, errs),
				input("email", "Email", "email", v, errs),
				input("phone", "Phone", "tel", v, errs),
				role,
				department,
			}
			if creating {
				pw := input("password", "Password", "password", v, errs)
				pw.Value = ""
				fields = append(fields, pw)
			}
			return fields
		},
		Label: func(m models.Member) string { return m.FullName },
		Detail: func(ctx context.Context, m models.Member, v viewer.Viewer) ([]DetailRow, error) {
			u, err := users.Get(ctx, string(m.ID))
			if err != nil {
				return nil, err
			}
			return []DetailRow{
				{Label: "First Name", Value: u.FirstName},
				{Label: "Last Name", Value: u.LastName},
				{Label: "Email", Value: u.Email},
				{Label: "Phone", Value: u.Phone},
				{Label: "Role", Value: string(u.Role)},
				{Label: "Department", Value: u.Department},
				{Label: "Joined Date", Value: v.FormatDate(u.CreatedAt)},
			}, nil
		},
		Options: grid.Options{
			Actions:    rowActions,
			Bulk:       grid.BulkActions{Delete: true, Export: true, Deactivate: true},
			Selectable: true,
		},
	}

	return &Entities{Assets: assets, Categories: categories, Departments: departments, Users: usersHandler}
}
