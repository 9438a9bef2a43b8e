package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/columns"
	"github.com/atinyakov/AssetDesk/internal/grid"
	"github.com/atinyakov/AssetDesk/internal/models"
	"github.com/atinyakov/AssetDesk/internal/session"
	"github.com/atinyakov/AssetDesk/internal/viewer"
)

// StatsSource returns the precomputed dashboard figures.
type StatsSource interface {
	AdminStats(ctx context.Context) (models.AdminStats, error)
	UserStats(ctx context.Context) (models.UserStats, error)
}

// AssetLister returns the assets of the signed-in account.
type AssetLister interface {
	Mine(ctx context.Context) ([]models.Asset, error)
}

// HomeHandler serves the landing pages, the user's asset list, settings
// and profile.
type HomeHandler struct {
	pages
	Stats StatsSource
	Mine  AssetLister
}

// Zones offered on the settings page.
var Zones = []string{
	"UTC",
	"Africa/Lagos",
	"Africa/Nairobi",
	"America/New_York",
	"America/Chicago",
	"America/Los_Angeles",
	"America/Sao_Paulo",
	"Asia/Almaty",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Europe/Berlin",
	"Europe/London",
	"Europe/Moscow",
	"Europe/Paris",
}

func readOnlyGrid(base string, view grid.View) GridData {
	return GridData{Base: base, View: view}
}

// AdminHome shows the entity totals and the most recent assets.
func (h *HomeHandler) AdminHome(w http.ResponseWriter, r *http.Request) {
	v := viewer.FromRequest(r)
	p := v.Printer()

	stats, err := h.Stats.AdminStats(r.Context())
	if err != nil {
		h.Log.Warn("failed to load admin stats", zap.Error(err))
		h.workspace(r).Flash(api.UserMessage(err, "Failed to load dashboard stats"))
	}

	cards := []DetailRow{
		{Label: "Total Assets", Value: p.Sprintf("%d", stats.TotalAssets)},
		{Label: "Total Users", Value: p.Sprintf("%d", stats.TotalUsers)},
		{Label: "Departments", Value: p.Sprintf("%d", stats.TotalDepartments)},
		{Label: "Categories", Value: p.Sprintf("%d", stats.TotalCategories)},
	}
	st := grid.State{Page: pageParam(r)}
	view := grid.Build(stats.RecentAssets, columns.Assets(stats.RecentAssets, v), false, &st, grid.Options{})

	h.render(w, r, http.StatusOK, "admin_home", "Dashboard", struct {
		Cards []DetailRow
		Grid  GridData
	}{cards, readOnlyGrid(r.URL.Path, view)})
}

// UserHome shows the signed-in account's asset figures.
func (h *HomeHandler) UserHome(w http.ResponseWriter, r *http.Request) {
	p := viewer.FromRequest(r).Printer()

	stats, err := h.Stats.UserStats(r.Context())
	if err != nil {
		h.Log.Warn("failed to load user stats", zap.Error(err))
		h.workspace(r).Flash(api.UserMessage(err, "Failed to load dashboard stats"))
	}

	cards := []DetailRow{
		{Label: "Total Assets", Value: p.Sprintf("%d", stats.TotalAssets)},
		{Label: "Total Cost", Value: p.Sprintf("$%.2f", float64(stats.TotalCost))},
		{Label: "Categories", Value: p.Sprintf("%d", len(stats.AssetsByCategory))},
		{Label: "Departments", Value: p.Sprintf("%d", len(stats.AssetsByDepartment))},
	}
	h.render(w, r, http.StatusOK, "user_home", "Dashboard", struct {
		Cards        []DetailRow
		ByCategory   []DetailRow
		ByDepartment []DetailRow
	}{cards, breakdown(stats.AssetsByCategory), breakdown(stats.AssetsByDepartment)})
}

// breakdown lists counts by descending size, then name.
func breakdown(counts map[string]int) []DetailRow {
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	out := make([]DetailRow, len(names))
	for i, n := range names {
		out[i] = DetailRow{Label: n, Value: grid.Stringify(counts[n])}
	}
	return out
}

// MyAssets lists the signed-in account's assets, read-only.
func (h *HomeHandler) MyAssets(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Mine.Mine(r.Context())
	if err != nil {
		h.Log.Warn("failed to load own assets", zap.Error(err))
		h.workspace(r).Flash(api.UserMessage(err, "Failed to load assets"))
	}
	v := viewer.FromRequest(r)
	st := grid.State{Page: pageParam(r)}
	view := grid.Build(rows, columns.Assets(rows, v), false, &st, grid.Options{})

	h.render(w, r, http.StatusOK, "user_assets", "My Assets", struct{ Grid GridData }{readOnlyGrid(r.URL.Path, view)})
}

// Profile shows the signed-in account.
func (h *HomeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	v := viewer.FromRequest(r)
	rows := []DetailRow{
		{Label: "Email", Value: sess.Email},
		{Label: "Role", Value: string(sess.Role)},
		{Label: "Signed in until", Value: v.FormatDateTime(sess.ExpiresAt.Format(time.RFC3339))},
	}
	h.render(w, r, http.StatusOK, "profile", "Profile", struct{ Rows []DetailRow }{rows})
}

// Settings shows the time zone and language used to format dates.
func (h *HomeHandler) Settings(w http.ResponseWriter, r *http.Request) {
	v := viewer.FromRequest(r)
	current := v.Location.String()
	zones := make([]Option, 0, len(Zones))
	for _, z := range Zones {
		zones = append(zones, Option{Value: z, Label: z, Selected: z == current})
	}
	h.render(w, r, http.StatusOK, "settings", "Settings", struct {
		Zones    []Option
		Language string
		Example  string
	}{zones, v.Language(), v.FormatDateTime(time.Now().Format(time.RFC3339))})
}

// SaveSettings stores the chosen time zone in a cookie.
func (h *HomeHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	zone := r.PostForm.Get("tz")
	if _, err := time.LoadLocation(zone); err != nil || zone == "" {
		h.workspace(r).Flash("Unknown time zone")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     viewer.TimezoneCookie,
		Value:    zone,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
