// Package models defines the records exchanged with the asset API and
// rendered by the dashboard grids.
package models

import "strings"

// Role is the access level the asset API assigns to a signed-in account.
type Role string

const (
	// RoleAdmin can manage every entity.
	RoleAdmin Role = "admin"
	// RoleUser only sees its own assets and stats.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Home is the landing page of the role.
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/admin/home"
	}
	return "/user/home"
}

// Asset is a tracked piece of organizational property.
type Asset struct {
	// ID is the identifier assigned by the asset API.
	ID ID `json:"id"`
	// Name is the display name of the asset.
	Name string `json:"name"`
	// CategoryID references the owning category.
	CategoryID ID `json:"category_id"`
	// CategoryName is denormalized by the server.
	CategoryName string `json:"category_name"`
	// DepartmentID references the owning department.
	DepartmentID ID `json:"department_id"`
	// DepartmentName is denormalized by the server.
	DepartmentName string `json:"department_name"`
	// DatePurchased is the purchase date as sent by the server.
	DatePurchased string `json:"date_purchased"`
	// Cost is the non-negative purchase cost.
	Cost Amount `json:"cost"`
	// CreatedBy is the id of the account that registered the asset.
	CreatedBy ID `json:"created_by"`
	// CreatedByName is the display name of that account.
	CreatedByName string `json:"created_by_name"`
	// CreatedAt is the server timestamp of creation.
	CreatedAt string `json:"created_at"`
}

// RowID returns the asset id.
func (a Asset) RowID() string { return string(a.ID) }

// Field returns the value stored under the JSON key.
func (a Asset) Field(key string) any {
	switch key {
	case "id":
		return string(a.ID)
	case "name":
		return a.Name
	case "category_id":
		return string(a.CategoryID)
	case "category_name":
		return a.CategoryName
	case "department_id":
		return string(a.DepartmentID)
	case "department_name":
		return a.DepartmentName
	case "date_purchased":
		return a.DatePurchased
	case "cost":
		return float64(a.Cost)
	case "created_by":
		return string(a.CreatedBy)
	case "created_by_name":
		return a.CreatedByName
	case "created_at":
		return a.CreatedAt
	}
	return nil
}

// Category groups assets by kind.
type Category struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// RowID returns the category id.
func (c Category) RowID() string { return string(c.ID) }

// Field returns the value stored under the JSON key.
func (c Category) Field(key string) any {
	return catalogField(c.ID, c.Name, c.Description, c.CreatedAt, key)
}

// Department groups assets by organizational unit.
type Department struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// RowID returns the department id.
func (d Department) RowID() string { return string(d.ID) }

// Field returns the value stored under the JSON key.
func (d Department) Field(key string) any {
	return catalogField(d.ID, d.Name, d.Description, d.CreatedAt, key)
}

func catalogField(id ID, name string, description *string, createdAt, key string) any {
	switch key {
	case "id":
		return string(id)
	case "name":
		return name
	case "description":
		if description == nil {
			return nil
		}
		return *description
	case "created_at":
		return createdAt
	}
	return nil
}

// User is an account as the asset API returns it.
type User struct {
	ID         ID     `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// StatusActive is assumed for accounts the API returns without a status.
const StatusActive = "active"

// StatusInactive marks a deactivated account.
const StatusInactive = "inactive"

// Member is the list row shown on the user management grid.
type Member struct {
	ID         ID     `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// NewMember flattens an API user into a grid row.
func NewMember(u User) Member {
	status := u.Status
	if status == "" {
		status = StatusActive
	}
	return Member{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   FullName(u.FirstName, u.LastName),
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		Department: u.Department,
		Status:     status,
		CreatedAt:  u.CreatedAt,
	}
}

// FullName joins first and last name with a single space.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// RowID returns the member id.
func (m Member) RowID() string { return string(m.ID) }

// Field returns the value stored under the JSON key.
func (m Member) Field(key string) any {
	switch key {
	case "id":
		return string(m.ID)
	case "first_name":
		return m.FirstName
	case "last_name":
		return m.LastName
	case "fullName":
		return m.FullName
	case "email":
		return m.Email
	case "phone":
		return m.Phone
	case "role":
		return string(m.Role)
	case "department":
		return m.Department
	case "status":
		return m.Status
	case "createdAt":
		return m.CreatedAt
	}
	return nil
}
