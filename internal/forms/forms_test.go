package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/AssetDesk/internal/models"
)

func TestAsset(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantErrors []string
	}{
		{
			name:   "valid",
			values: url.Values{"name": {"Laptop"}, "category_id": {"1"}, "department_id": {"2"}, "date_purchased": {"2024-01-01"}, "cost": {"99.5"}},
		},
		{
			name:       "missing fields",
			values:     url.Values{"cost": {"10"}},
			wantErrors: []string{"name", "category_id", "department_id", "date_purchased"},
		},
		{
			name:       "negative cost",
			values:     url.Values{"name": {"x"}, "category_id": {"1"}, "department_id": {"2"}, "date_purchased": {"2024-01-01"}, "cost": {"-1"}},
			wantErrors: []string{"cost"},
		},
		{
			name:       "cost not a number",
			values:     url.Values{"name": {"x"}, "category_id": {"1"}, "department_id": {"2"}, "date_purchased": {"2024-01-01"}, "cost": {"ten"}},
			wantErrors: []string{"cost"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Asset(tt.values)
			if len(tt.wantErrors) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantErrors), "errors: %v", errs)
			for _, f := range tt.wantErrors {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestAsset_CostMessage(t *testing.T) {
	_, errs := Asset(url.Values{"cost": {"ten"}})
	assert.Equal(t, "must be a number", errs["cost"])

	_, errs = Asset(url.Values{"cost": {"-3"}})
	assert.Equal(t, "must be 0 or more", errs["cost"])

	for _, raw := range []string{"Inf", "-Inf", "+Infinity", "NaN"} {
		_, errs = Asset(url.Values{"cost": {raw}})
		assert.Equal(t, "must be a number", errs["cost"], raw)
	}
}

func TestCatalog_BlankDescriptionIsNil(t *testing.T) {
	in, errs := Catalog(url.Values{"name": {"IT"}, "description": {"   "}})
	assert.Empty(t, errs)
	assert.Nil(t, in.Description)

	in, _ = Catalog(url.Values{"name": {"IT"}, "description": {"Hardware"}})
	require.NotNil(t, in.Description)
	assert.Equal(t, "Hardware", *in.Description)

	_, errs = Catalog(url.Values{})
	assert.Equal(t, "is required", errs["name"])
}

func validUser() url.Values {
	return url.Values{
		"first_name": {"Ada"}, "last_name": {"Lovelace"}, "email": {"ada@example.com"},
		"phone": {"555-0100"}, "role": {"admin"}, "department": {"Engineering"}, "password": {"secret1"},
	}
}

func TestUser(t *testing.T) {
	in, errs := User(validUser(), true)
	assert.Empty(t, errs)
	assert.Equal(t, models.RoleAdmin, in.Role)
	assert.Equal(t, "secret1", in.Password)

	v := validUser()
	v.Set("first_name", "A")
	v.Set("email", "nope")
	v.Set("role", "root")
	v.Set("phone", "12")
	_, errs = User(v, true)
	assert.Equal(t, "must be at least 2 characters", errs["first_name"])
	assert.Equal(t, "must be a valid email", errs["email"])
	assert.Equal(t, "must be one of: admin, user", errs["role"])
	assert.Equal(t, "must be at least 5 characters", errs["phone"])
}

func TestUser_PasswordRules(t *testing.T) {
	v := validUser()
	v.Del("password")
	_, errs := User(v, true)
	assert.Equal(t, "is required", errs["password"])

	in, errs := User(v, false)
	assert.Empty(t, errs)
	assert.Empty(t, in.Password)

	v.Set("password", "123")
	_, errs = User(v, true)
	assert.Equal(t, "must be at least 6 characters", errs["password"])

	in, errs = User(v, false)
	assert.Empty(t, errs, "password is ignored on edit")
	assert.Empty(t, in.Password)
}

func TestCredentials(t *testing.T) {
	_, errs := Credentials(url.Values{"email": {"bad"}})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{"password": "is required", "email": "must be a valid email"}
	assert.Equal(t, "email must be a valid email; password is required", errs.Error())
}
