package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// AdminStats returns the organization-wide counters.
func (c *Client) AdminStats(ctx context.Context) (models.AdminStats, error) {
	env, err := c.do(ctx, request{method: http.MethodGet, route: "/admin/stats/stats", path: "/admin/stats/stats"})
	if err != nil {
		return models.AdminStats{}, err
	}
	return field[models.AdminStats](env, "stats")
}

// UserStats returns the counters of the signed-in account's assets.
func (c *Client) UserStats(ctx context.Context) (models.UserStats, error) {
	env, err := c.do(ctx, request{method: http.MethodGet, route: "/user/assets/stats", path: "/user/assets/stats"})
	if err != nil {
		return models.UserStats{}, err
	}
	return field[models.UserStats](env, "stats")
}
