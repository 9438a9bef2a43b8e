// Command assetctl is a terminal client for the asset API. It shares the
// dashboard's API client, grid and column registries and prints grids as
// plain-text tables.
package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/client/prompt"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/logger"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/service"
	"github.com/atinyakov/AssetDesk/internal/session"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

var (
	version   string
	buildDate string
)

const usage = `Available commands:
  login
  list <assets|categories|departments|users> [page]
  view user <id>
  add asset
  delete <entity> <id>
  export <entity> <file.xlsx>
  logout
  exit`

// entity is the terminal surface of one managed collection.
type entity interface {
	list(ctx context.Context, w io.Writer, page int, v viewer.Viewer) error
	remove(ctx context.Context, id string) error
	export(ctx context.Context, path string, v viewer.Viewer) (int, error)
}

type collection[T grid.Record, In any] struct {
	c *service.Collection[T, In]
	b *service.Board[T]
}

func (e collection[T, In]) list(ctx context.Context, w io.Writer, page int, v viewer.Viewer) error {
	if err := e.c.Load(ctx, e.b, true); err != nil {
		return err
	}
	e.b.SetPage(page)
	return grid.WriteText(w, e.b.View(e.c.Columns(e.b.Rows(), v), grid.Options{}))
}

func (e collection[T, In]) remove(ctx context.Context, id string) error {
	if err := e.c.Load(ctx, e.b, false); err != nil {
		return err
	}
	return e.c.Delete(ctx, e.b, id)
}

func (e collection[T, In]) export(ctx context.Context, path string, v viewer.Viewer) (int, error) {
	if err := e.c.Load(ctx, e.b, true); err != nil {
		return 0, err
	}
	rows := e.b.Rows()
	buf, _, err := e.c.Bulk(e.b, v).ExportAll(ctx, rows)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// shell holds the state of one interactive session.
type shell struct {
	client   *api.Client
	entities map[string]entity
	ws       *service.Workspace
	cols     *service.Collections
	prompter *prompt.Prompter
	out      io.Writer
	viewer   viewer.Viewer
	sess     *models.Session
}

func (s *shell) ctx() context.Context {
	if s.sess == nil {
		return context.Background()
	}
	return session.NewContext(context.Background(), s.sess)
}

func (s *shell) run(args []string) (bool, error) {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, usage)
	case "login":
		creds, err := s.prompter.Credentials()
		if err != nil {
			return false, err
		}
		res, err := s.client.Login(context.Background(), creds)
		if err != nil {
			return false, err
		}
		role := cmp.Or(res.Role, models.RoleUser)
		s.sess = &models.Session{Token: res.AccessToken, Role: role, Email: creds.Email}
		fmt.Fprintf(s.out, "Signed in as %s (%s)\n", creds.Email, role)
	case "logout":
		if s.sess == nil {
			fmt.Fprintln(s.out, "Not signed in")
			return false, nil
		}
		if err := s.client.Logout(s.ctx()); err != nil {
			fmt.Fprintf(s.out, "Remote logout failed: %s\n", api.UserMessage(err, "unexpected error"))
		}
		s.sess = nil
		s.ws = service.NewWorkspaces(0).Get("cli")
		s.entities = entities(s.cols, s.ws)
		fmt.Fprintln(s.out, "Signed out")
	case "list":
		if len(args) < 2 {
			return false, errors.New("usage: list <entity> [page]")
		}
		e, err := s.entity(args[1])
		if err != nil {
			return false, err
		}
		page := 1
		if len(args) > 2 {
			if page, err = strconv.Atoi(args[2]); err != nil {
				return false, fmt.Errorf("invalid page %q", args[2])
			}
		}
		return false, e.list(s.ctx(), s.out, page, s.viewer)
	case "view":
		if len(args) < 3 || args[1] != "user" {
			return false, errors.New("usage: view user <id>")
		}
		u, err := s.client.Users().Get(s.ctx(), args[2])
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Name:       %s\nEmail:      %s\nPhone:      %s\nRole:       %s\nDepartment: %s\nJoined:     %s\n",
			models.FullName(u.FirstName, u.LastName), u.Email, u.Phone, u.Role, u.Department, s.viewer.FormatDate(u.CreatedAt))
	case "add":
		if len(args) < 2 || args[1] != "asset" {
			return false, errors.New("usage: add asset")
		}
		in, err := s.prompter.AssetInput()
		if err != nil {
			return false, err
		}
		a, err := s.cols.Assets.Create(s.ctx(), s.ws.Assets, in)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Asset %s created\n", a.ID)
	case "delete":
		if len(args) < 3 {
			return false, errors.New("usage: delete <entity> <id>")
		}
		e, err := s.entity(args[1])
		if err != nil {
			return false, err
		}
		if err := e.remove(s.ctx(), args[2]); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "Deleted")
	case "export":
		if len(args) < 3 {
			return false, errors.New("usage: export <entity> <file.xlsx>")
		}
		e, err := s.entity(args[1])
		if err != nil {
			return false, err
		}
		n, err := e.export(s.ctx(), args[2], s.viewer)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "%d rows written to %s\n", n, args[2])
	case "exit":
		fmt.Fprintln(s.out, "Bye")
		return true, nil
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return false, nil
}

func (s *shell) entity(name string) (entity, error) {
	if s.sess == nil {
		return nil, errors.New("please login first")
	}
	e, ok := s.entities[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}
	return e, nil
}

func entities(c *service.Collections, ws *service.Workspace) map[string]entity {
	return map[string]entity{
		"assets":      collection[models.Asset, models.AssetInput]{c: c.Assets, b: ws.Assets},
		"categories":  collection[models.Category, models.CatalogInput]{c: c.Categories, b: ws.Categories},
		"departments": collection[models.Department, models.CatalogInput]{c: c.Departments, b: ws.Departments},
		"users":       collection[models.Member, models.UserInput]{c: c.Users, b: ws.Users},
	}
}

// repl reads commands until exit or end of input.
func (s *shell) repl() {
	for {
		line, err := s.prompter.Line("assetctl> ")
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		done, err := s.run(args)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", api.UserMessage(err, err.Error()))
		}
		if done {
			return
		}
	}
}

func main() {
	var (
		baseURL string
		caFile  string
		tz      string
		showVer bool
	)
	flag.StringVar(&baseURL, "api", api.DefaultBaseURL, "asset API base URL")
	flag.StringVar(&caFile, "api-ca", "", "path to a CA bundle for the asset API")
	flag.StringVar(&tz, "tz", "", "IANA time zone used to print dates")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("AssetDesk terminal client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	lg := logger.New()
	if err := lg.Init("error"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Log.Sync() }()

	httpClient, err := api.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	client := api.New(baseURL, api.WithHTTPClient(httpClient), api.WithLogger(lg.Log))
	cols := service.NewCollections(client, lg.Log)
	ws := service.NewWorkspaces(0).Get("cli")

	s := &shell{
		client:   client,
		entities: entities(cols, ws),
		ws:       ws,
		cols:     cols,
		prompter: prompt.New(os.Stdin, os.Stdout),
		out:      os.Stdout,
		viewer:   viewer.New(os.Getenv("LANG"), tz),
	}
	s.repl()
}
