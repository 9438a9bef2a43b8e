package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// AssetStore reads and writes assets.
type AssetStore struct {
	c *Client
}

// Assets returns the asset endpoints of c.
func (c *Client) Assets() AssetStore {
	return AssetStore{c: c}
}

// List returns every asset.
func (s AssetStore) List(ctx context.Context) ([]models.Asset, error) {
	env, err := s.c.do(ctx, request{method: http.MethodGet, route: "/admin/assets/list/all", path: "/admin/assets/list/all"})
	if err != nil {
		return nil, err
	}
	return list[models.Asset](env, "assets")
}

// Mine returns the assets assigned to the signed-in account.
func (s AssetStore) Mine(ctx context.Context) ([]models.Asset, error) {
	env, err := s.c.do(ctx, request{method: http.MethodGet, route: "/user/assets/list", path: "/user/assets/list"})
	if err != nil {
		return nil, err
	}
	return list[models.Asset](env, "assets")
}

// Create registers a new asset and returns it as stored by the server.
func (s AssetStore) Create(ctx context.Context, in models.AssetInput) (models.Asset, error) {
	env, err := s.c.do(ctx, request{method: http.MethodPost, route: "/admin/assets/create", path: "/admin/assets/create", body: in})
	if err != nil {
		return models.Asset{}, err
	}
	return field[models.Asset](env, "asset")
}

// Update overwrites the asset with id.
func (s AssetStore) Update(ctx context.Context, id string, in models.AssetInput) (models.Asset, error) {
	env, err := s.c.do(ctx, request{
		method: http.MethodPut,
		route:  "/admin/assets/update/{id}",
		path:   idPath("/admin/assets/update", id),
		body:   in,
	})
	if err != nil {
		return models.Asset{}, err
	}
	return field[models.Asset](env, "asset")
}

// Delete removes the asset with id.
func (s AssetStore) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/admin/assets/delete/{id}",
		path:   idPath("/admin/assets/delete", id),
	})
	return err
}
