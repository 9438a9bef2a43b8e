package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/cache"
	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/columns"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/session"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

type fakeRemote struct {
	rows      []models.Asset
	listErr   error
	failIDs   map[string]bool
	listCalls int
	deleted   []string
}

func (f *fakeRemote) List(context.Context) ([]models.Asset, error) {
	f.listCalls++
	return f.rows, f.listErr
}

func (f *fakeRemote) Create(_ context.Context, in models.AssetInput) (models.Asset, error) {
	return models.Asset{ID: "9", Name: in.Name, Cost: models.Amount(in.Cost)}, nil
}

func (f *fakeRemote) Update(_ context.Context, id string, in models.AssetInput) (models.Asset, error) {
	return models.Asset{ID: models.ID(id), Name: in.Name}, nil
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	if f.failIDs[id] {
		return &api.Error{StatusCode: 409, Message: "asset in use"}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func assets(n int) []models.Asset {
	out := make([]models.Asset, n)
	for i := range out {
		out[i] = models.Asset{ID: models.ID(strconv.Itoa(i + 1)), Name: "asset " + strconv.Itoa(i+1)}
	}
	return out
}

func rowIDs[T grid.Record](rows []T) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.RowID()
	}
	return out
}

func newAssetCollection(r *fakeRemote) *Collection[models.Asset, models.AssetInput] {
	return NewCollection[models.Asset, models.AssetInput]("assets", r, columns.Assets, zap.NewNop())
}

func TestCollectionLoad_FetchesOnce(t *testing.T) {
	remote := &fakeRemote{rows: assets(3)}
	c := newAssetCollection(remote)
	b := NewBoard[models.Asset](cache.Prepend)

	assert.True(t, b.View(nil, grid.Options{}).Loading(), "unloaded board renders as loading")

	require.NoError(t, c.Load(context.Background(), b, false))
	require.NoError(t, c.Load(context.Background(), b, false))
	assert.Equal(t, 1, remote.listCalls)

	require.NoError(t, c.Load(context.Background(), b, true))
	assert.Equal(t, 2, remote.listCalls)
	assert.Equal(t, 3, b.Len())
}

func TestCollectionLoad_NoTokenIsEmpty(t *testing.T) {
	c := newAssetCollection(&fakeRemote{listErr: api.ErrNoToken})
	b := NewBoard[models.Asset](cache.Prepend)

	require.NoError(t, c.Load(context.Background(), b, false))
	assert.True(t, b.View(nil, grid.Options{}).Empty())
}

func TestCollectionLoad_Error(t *testing.T) {
	apiErr := &api.Error{StatusCode: 500, Message: "boom"}
	c := newAssetCollection(&fakeRemote{listErr: apiErr})
	b := NewBoard[models.Asset](cache.Prepend)

	err := c.Load(context.Background(), b, false)
	assert.ErrorIs(t, err, apiErr)
	assert.False(t, b.Loaded())
}

func TestCollectionCreate_PrependsWithoutRefetch(t *testing.T) {
	remote := &fakeRemote{rows: assets(2)}
	c := newAssetCollection(remote)
	b := NewBoard[models.Asset](cache.Prepend)
	require.NoError(t, c.Load(context.Background(), b, false))
	b.Toggle(1)

	row, err := c.Create(context.Background(), b, models.AssetInput{Name: "Laptop"})
	require.NoError(t, err)

	assert.Equal(t, models.ID("9"), row.ID)
	assert.Equal(t, []string{"9", "1", "2"}, rowIDs(b.Rows()))
	assert.Equal(t, 1, remote.listCalls)
	assert.Empty(t, b.Selected(), "insert shifts indices so the selection is dropped")
}

func TestCollectionUpdate_ReplacesInPlace(t *testing.T) {
	c := newAssetCollection(&fakeRemote{rows: assets(3)})
	b := NewBoard[models.Asset](cache.Prepend)
	require.NoError(t, c.Load(context.Background(), b, false))
	b.Toggle(0)

	_, err := c.Update(context.Background(), b, "2", models.AssetInput{Name: "renamed"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, rowIDs(b.Rows()))
	got, _ := b.Get("2")
	assert.Equal(t, "renamed", got.Name)
	assert.Len(t, b.Selected(), 1, "in-place update keeps the selection")
}

func TestCollectionDelete_ClampsPage(t *testing.T) {
	c := newAssetCollection(&fakeRemote{rows: assets(9)})
	b := NewBoard[models.Asset](cache.Prepend)
	require.NoError(t, c.Load(context.Background(), b, false))
	b.SetPage(2)
	require.Equal(t, 2, b.View(nil, grid.Options{}).Page)

	require.NoError(t, c.Delete(context.Background(), b, "9"))

	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 1, b.View(nil, grid.Options{}).Page)
}

func TestBulkDeleteAll_ContinuesPastFailures(t *testing.T) {
	remote := &fakeRemote{rows: assets(4), failIDs: map[string]bool{"2": true}}
	c := newAssetCollection(remote)
	b := NewBoard[models.Asset](cache.Prepend)
	require.NoError(t, c.Load(context.Background(), b, false))
	b.ToggleAll()

	n, err := c.Bulk(b, viewer.Default()).DeleteAll(context.Background(), b.Selected())

	assert.Equal(t, 3, n)
	var apiErr *api.Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"1", "3", "4"}, remote.deleted)
	assert.Equal(t, []string{"2"}, rowIDs(b.Rows()))
	assert.Empty(t, b.Selected())
}

func TestBulkExportAll(t *testing.T) {
	c := newAssetCollection(&fakeRemote{rows: assets(2)})
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	b := NewBoard[models.Asset](cache.Prepend)
	require.NoError(t, c.Load(context.Background(), b, false))

	buf, name, err := c.Bulk(b, viewer.Default()).ExportAll(context.Background(), b.Rows())
	require.NoError(t, err)
	assert.Equal(t, "assets-20260102-030405.xlsx", name)
	assert.NotZero(t, buf.Len())

	_, _, err = c.Bulk(b, viewer.Default()).ExportAll(context.Background(), nil)
	assert.Error(t, err)
}

func TestBulkDeactivateAll_Unsupported(t *testing.T) {
	c := newAssetCollection(&fakeRemote{})
	assert.False(t, c.Deactivatable())

	_, err := c.Bulk(NewBoard[models.Asset](cache.Prepend), viewer.Default()).
		DeactivateAll(context.Background(), assets(1))
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}

type fakeUsers struct {
	rows []models.Member
}

func (f *fakeUsers) List(context.Context) ([]models.Member, error) { return f.rows, nil }

func (f *fakeUsers) Create(_ context.Context, in models.UserInput) (models.Member, error) {
	return in.Member("new", time.Now()), nil
}

func (f *fakeUsers) Update(_ context.Context, id string, in models.UserInput) (models.Member, error) {
	m := in.Member(models.ID(id), time.Now())
	m.Status, m.CreatedAt = "", ""
	return m, nil
}

func (f *fakeUsers) Delete(context.Context, string) error { return nil }

func (f *fakeUsers) Deactivate(_ context.Context, m models.Member) (models.Member, error) {
	m.Status = models.StatusInactive
	return m, nil
}

func TestUsersCollection_MergeAndDeactivate(t *testing.T) {
	remote := &fakeUsers{rows: []models.Member{
		{ID: "1", FullName: "Ann Lee", Status: "pending", CreatedAt: "2024-01-01"},
		{ID: "2", FullName: "Bob Ray", Status: "active", CreatedAt: "2024-02-01"},
	}}
	c := NewCollection[models.Member, models.UserInput]("users", remote,
		ignoreRows(columns.Users), zap.NewNop(),
		WithMerge[models.Member, models.UserInput](mergeMember))
	b := NewBoard[models.Member](cache.Append)
	require.NoError(t, c.Load(context.Background(), b, false))

	updated, err := c.Update(context.Background(), b, "1", models.UserInput{FirstName: "Ann", LastName: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", updated.FullName)
	assert.Equal(t, "pending", updated.Status)
	assert.Equal(t, "2024-01-01", updated.CreatedAt)

	require.True(t, c.Deactivatable())
	b.ToggleAll()
	n, err := c.Bulk(b, viewer.Default()).DeactivateAll(context.Background(), b.Selected())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, m := range b.Rows() {
		assert.Equal(t, models.StatusInactive, m.Status)
	}
	assert.Len(t, b.Selected(), 2, "deactivation keeps row positions")
}

func TestBoardUpsert_AppendKeepsSelection(t *testing.T) {
	b := NewBoard[models.Asset](cache.Append)
	b.replace(assets(3))
	b.Toggle(0)
	b.Toggle(2)

	b.upsert(models.Asset{ID: "9"})

	assert.Equal(t, []string{"1", "3"}, rowIDs(b.Selected()))
}

func TestBoardToggleAll_SelectsEveryRow(t *testing.T) {
	b := NewBoard[models.Asset](cache.Append)
	b.replace(assets(3))
	b.Toggle(1)

	b.ToggleAll()
	assert.Len(t, b.Selected(), 3)

	b.ToggleAll()
	assert.Empty(t, b.Selected())
}

func TestCatalogUpdate_KeepsCreatedAtWhenNotEchoed(t *testing.T) {
	for _, base := range []string{"/admin/categories", "/admin/departments"} {
		t.Run(base, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.Method + " " + r.URL.Path {
				case "GET " + base + "/list/all":
					key := strings.TrimPrefix(base, "/admin/")
					_, _ = io.WriteString(w, `{"success":true,"`+key+`":[{"id":1,"name":"IT","created_at":"2024-01-02T15:04:05Z"}]}`)
				case "PUT " + base + "/update/1":
					_, _ = io.WriteString(w, `{"success":true,"message":"updated"}`)
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer srv.Close()

			cols := NewCollections(api.New(srv.URL), zap.NewNop())
			ws := NewWorkspaces(time.Hour).Get("s")
			ctx := session.NewContext(context.Background(), &models.Session{ID: "s", Token: "tok"})

			if base == "/admin/categories" {
				require.NoError(t, cols.Categories.Load(ctx, ws.Categories, false))
				_, err := cols.Categories.Update(ctx, ws.Categories, "1", models.CatalogInput{Name: "IT2"})
				require.NoError(t, err)
				got, ok := ws.Categories.Get("1")
				require.True(t, ok)
				assert.Equal(t, "IT2", got.Name)
				assert.Equal(t, "2024-01-02T15:04:05Z", got.CreatedAt)
				return
			}
			require.NoError(t, cols.Departments.Load(ctx, ws.Departments, false))
			_, err := cols.Departments.Update(ctx, ws.Departments, "1", models.CatalogInput{Name: "IT2"})
			require.NoError(t, err)
			got, ok := ws.Departments.Get("1")
			require.True(t, ok)
			assert.Equal(t, "IT2", got.Name)
			assert.Equal(t, "2024-01-02T15:04:05Z", got.CreatedAt)
		})
	}
}
