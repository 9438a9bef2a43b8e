package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

type userGetterFunc func(ctx context.Context, id string) (models.User, error)

func (f userGetterFunc) Get(ctx context.Context, id string) (models.User, error) { return f(ctx, id) }

func testEntities(users UserGetter) *Entities {
	log := zap.NewNop()
	return NewEntities(pages{Log: log}, service.NewCollections(api.New("http://127.0.0.1:0"), log), users)
}

func TestAssetValues_TrimTimestamp(t *testing.T) {
	e := testEntities(nil)
	v := e.Assets.Values(models.Asset{
		Name:          "Laptop",
		CategoryID:    "3",
		DatePurchased: "2024-05-06T00:00:00.000Z",
		Cost:          1200.5,
	})
	assert.Equal(t, "2024-05-06", v.Get("date_purchased"))
	assert.Equal(t, "1200.50", v.Get("cost"))
	assert.Equal(t, "3", v.Get("category_id"))
}

func TestCatalogDetail_PlaceholderDescription(t *testing.T) {
	e := testEntities(nil)
	rows, err := e.Categories.Detail(context.Background(), models.Category{Name: "Laptops"}, viewer.Default())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "--", rows[1].Value)
}

func TestUserDetail_FetchesAccount(t *testing.T) {
	var asked string
	e := testEntities(userGetterFunc(func(_ context.Context, id string) (models.User, error) {
		asked = id
		return models.User{FirstName: "Ada", LastName: "Lovelace", Role: models.RoleAdmin}, nil
	}))

	rows, err := e.Users.Detail(context.Background(), models.Member{ID: "7"}, viewer.Default())
	require.NoError(t, err)
	assert.Equal(t, "7", asked)
	assert.Equal(t, "Ada", rows[0].Value)
	assert.Equal(t, "admin", rows[4].Value)
}

func TestOptions_MarksSelected(t *testing.T) {
	opts := options([]string{"a", "b"}, []string{"A", "B"}, "b")
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, "B", opts[1].Label)
}
