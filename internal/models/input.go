package models

import "time"

// AssetInput is the create/update payload for an asset.
type AssetInput struct {
	Name          string  `json:"name" validate:"required"`
	CategoryID    string  `json:"category_id" validate:"required"`
	DepartmentID  string  `json:"department_id" validate:"required"`
	DatePurchased string  `json:"date_purchased" validate:"required"`
	Cost          float64 `json:"cost" validate:"gte=0"`
}

// CatalogInput is the create/update payload shared by categories and
// departments. A nil Description is sent as JSON null.
type CatalogInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UserInput is the create/update payload for an account. Password is only
// sent on create.
type UserInput struct {
	FirstName  string `json:"first_name" validate:"required,min=2"`
	LastName   string `json:"last_name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=5"`
	Role       Role   `json:"role" validate:"required,oneof=admin user"`
	Department string `json:"department" validate:"required,min=1"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Member builds the grid row for a user that was just written, for
// responses that only carry the new id.
func (in UserInput) Member(id ID, now time.Time) Member {
	return Member{
		ID:         id,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		FullName:   FullName(in.FirstName, in.LastName),
		Email:      in.Email,
		Phone:      in.Phone,
		Role:       in.Role,
		Department: in.Department,
		Status:     StatusActive,
		CreatedAt:  now.UTC().Format(time.RFC3339),
	}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
