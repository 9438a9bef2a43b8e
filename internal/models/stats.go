package models

import "time"

// AdminStats is the precomputed overview returned to administrators.
type AdminStats struct {
	TotalAssets      int     `json:"total_assets"`
	TotalUsers       int     `json:"total_users"`
	TotalDepartments int     `json:"total_departments"`
	TotalCategories  int     `json:"total_categories"`
	RecentAssets     []Asset `json:"recent_assets"`
}

// UserStats is the overview of the signed-in account's own assets.
type UserStats struct {
	TotalAssets        int            `json:"totalAssets"`
	TotalCost          Amount         `json:"totalCost"`
	AssetsByCategory   map[string]int `json:"assetsByCategory"`
	AssetsByDepartment map[string]int `json:"assetsByDepartment"`
}

// Session binds a browser cookie to the bearer token issued by the asset API.
type Session struct {
	// ID is the opaque cookie value.
	ID string
	// Token is the bearer token sent to the asset API.
	Token string
	// Role decides which shell the account lands in.
	Role Role
	// Email is the address used to sign in.
	Email string
	// ExpiresAt is taken from the token's exp claim when present.
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
