package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// CatalogStore reads and writes one of the name/description tables
// (categories, departments).
type CatalogStore[T any] struct {
	c        *Client
	base     string
	plural   string
	singular string
	build    func(id models.ID, in models.CatalogInput) T
}

// Categories returns the category endpoints of c.
func (c *Client) Categories() CatalogStore[models.Category] {
	return CatalogStore[models.Category]{
		c: c, base: "/admin/categories", plural: "categories", singular: "category",
		build: func(id models.ID, in models.CatalogInput) models.Category {
			return models.Category{ID: id, Name: in.Name, Description: in.Description}
		},
	}
}

// Departments returns the department endpoints of c.
func (c *Client) Departments() CatalogStore[models.Department] {
	return CatalogStore[models.Department]{
		c: c, base: "/admin/departments", plural: "departments", singular: "department",
		build: func(id models.ID, in models.CatalogInput) models.Department {
			return models.Department{ID: id, Name: in.Name, Description: in.Description}
		},
	}
}

// List returns every row.
func (s CatalogStore[T]) List(ctx context.Context) ([]T, error) {
	route := s.base + "/list/all"
	env, err := s.c.do(ctx, request{method: http.MethodGet, route: route, path: route})
	if err != nil {
		return nil, err
	}
	return list[T](env, s.plural)
}

// Create adds a row.
func (s CatalogStore[T]) Create(ctx context.Context, in models.CatalogInput) (T, error) {
	route := s.base + "/create"
	env, err := s.c.do(ctx, request{method: http.MethodPost, route: route, path: route, body: normalize(in)})
	if err != nil {
		var zero T
		return zero, err
	}
	return field[T](env, s.singular)
}

// Update overwrites the row with id. An empty description is sent as null.
// When the server does not echo the row, it is rebuilt from the input.
func (s CatalogStore[T]) Update(ctx context.Context, id string, in models.CatalogInput) (T, error) {
	in = normalize(in)
	env, err := s.c.do(ctx, request{
		method: http.MethodPut,
		route:  s.base + "/update/{id}",
		path:   idPath(s.base+"/update", id),
		body:   in,
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !env.has(s.singular) {
		return s.build(models.ID(id), in), nil
	}
	return field[T](env, s.singular)
}

// Delete removes the row with id.
func (s CatalogStore[T]) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, request{
		method: http.MethodDelete,
		route:  s.base + "/delete/{id}",
		path:   idPath(s.base+"/delete", id),
	})
	return err
}

func normalize(in models.CatalogInput) models.CatalogInput {
	if in.Description != nil && *in.Description == "" {
		in.Description = nil
	}
	return in
}
