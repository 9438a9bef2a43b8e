package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// UserStore reads and writes accounts.
type UserStore struct {
	c *Client
}

// Users returns the account endpoints of c.
func (c *Client) Users() UserStore {
	return UserStore{c: c}
}

// List returns every account flattened into grid rows.
func (s UserStore) List(ctx context.Context) ([]models.Member, error) {
	env, err := s.c.do(ctx, request{method: http.MethodGet, route: "/admin/users/list", path: "/admin/users/list"})
	if err != nil {
		return nil, err
	}
	users, err := list[models.User](env, "users")
	if err != nil {
		return nil, err
	}
	out := make([]models.Member, len(users))
	for i, u := range users {
		out[i] = models.NewMember(u)
	}
	return out, nil
}

// Get returns the full record of one account.
func (s UserStore) Get(ctx context.Context, id string) (models.User, error) {
	env, err := s.c.do(ctx, request{
		method: http.MethodGet,
		route:  "/admin/users/list-user/{id}",
		path:   idPath("/admin/users/list-user", id),
	})
	if err != nil {
		return models.User{}, err
	}
	return field[models.User](env, "user")
}

// Create adds an account. The API may answer with only the new id, in which
// case the row is built from the input.
func (s UserStore) Create(ctx context.Context, in models.UserInput) (models.Member, error) {
	env, err := s.c.do(ctx, request{method: http.MethodPost, route: "/admin/users/create", path: "/admin/users/create", body: in})
	if err != nil {
		return models.Member{}, err
	}
	if env.has("user") {
		u, err := field[models.User](env, "user")
		if err != nil {
			return models.Member{}, err
		}
		return models.NewMember(u), nil
	}
	id, err := field[models.ID](env, "userId")
	if err != nil {
		return models.Member{}, err
	}
	return in.Member(id, s.c.now()), nil
}

// Update overwrites the account with id. The password is never sent. When
// the API does not echo the account, Status and CreatedAt of the result are
// left empty for the caller to fill from its cached row.
func (s UserStore) Update(ctx context.Context, id string, in models.UserInput) (models.Member, error) {
	in.Password = ""
	env, err := s.c.do(ctx, request{
		method: http.MethodPut,
		route:  "/admin/users/update/{id}",
		path:   idPath("/admin/users/update", id),
		body:   in,
	})
	if err != nil {
		return models.Member{}, err
	}
	if env.has("user") {
		u, err := field[models.User](env, "user")
		if err != nil {
			return models.Member{}, err
		}
		return models.NewMember(u), nil
	}
	m := in.Member(models.ID(id), s.c.now())
	m.Status = ""
	m.CreatedAt = ""
	return m, nil
}

// Delete removes the account with id.
func (s UserStore) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/admin/users/delete/{id}",
		path:   idPath("/admin/users/delete", id),
	})
	return err
}

// Deactivate marks the account inactive and returns the updated row.
func (s UserStore) Deactivate(ctx context.Context, m models.Member) (models.Member, error) {
	_, err := s.c.do(ctx, request{
		method: http.MethodPut,
		route:  "/admin/users/update/{id}",
		path:   idPath("/admin/users/update", string(m.ID)),
		body:   map[string]string{"status": models.StatusInactive},
	})
	if err != nil {
		return models.Member{}, err
	}
	m.Status = models.StatusInactive
	return m, nil
}
