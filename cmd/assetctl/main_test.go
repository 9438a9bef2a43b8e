package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/client/prompt"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

func newShell(t *testing.T, input string) (*shell, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = io.WriteString(w, `{"success":true,"access_token":"tok","role":"admin"}`)
		case "/admin/assets/list/all":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"success":false,"message":"Unauthorized"}`)
				return
			}
			_, _ = io.WriteString(w, `{"success":true,"assets":[{"id":1,"name":"Laptop","cost":"1200.50"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"not found"}`)
		}
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	client := api.New(srv.URL)
	cols := service.NewCollections(client, zap.NewNop())
	ws := service.NewWorkspaces(0).Get("cli")
	return &shell{
		client:   client,
		entities: entities(cols, ws),
		ws:       ws,
		cols:     cols,
		prompter: prompt.New(strings.NewReader(input), &out),
		out:      &out,
		viewer:   viewer.Default(),
	}, &out
}

func TestShell_LoginThenList(t *testing.T) {
	s, out := newShell(t, "login\nadmin@example.com\nsecret1\nlist assets\nexit\n")
	s.repl()

	text := out.String()
	assert.Contains(t, text, "Signed in as admin@example.com (admin)")
	assert.Contains(t, text, "Laptop")
	assert.Contains(t, text, "Bye")
}

func TestShell_ListRequiresLogin(t *testing.T) {
	s, _ := newShell(t, "")
	_, err := s.run([]string{"list", "assets"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestShell_UnknownEntity(t *testing.T) {
	s, _ := newShell(t, "admin@example.com\nsecret1\n")
	_, err := s.run([]string{"login"})
	require.NoError(t, err)

	_, err = s.run([]string{"list", "printers"})
	assert.EqualError(t, err, `unknown entity "printers"`)
}
