package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// LoginResult is what the asset API returns for valid credentials.
type LoginResult struct {
	// AccessToken is the bearer token for later calls.
	AccessToken string
	// Role is empty when the API leaves it to the token claims.
	Role models.Role
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (LoginResult, error) {
	env, err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/auth/login",
		path:   "/auth/login",
		body:   creds,
		public: true,
	})
	if err != nil {
		return LoginResult{}, err
	}

	key := "access_token"
	if !env.has(key) {
		key = "token"
	}
	token, err := field[string](env, key)
	if err != nil {
		return LoginResult{}, err
	}

	res := LoginResult{AccessToken: token}
	if env.has("role") {
		if res.Role, err = field[models.Role](env, "role"); err != nil {
			return LoginResult{}, err
		}
	}
	return res, nil
}

// Logout invalidates the token of the session in ctx.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/superuser/logout",
		path:   "/api/superuser/logout",
	})
	return err
}
