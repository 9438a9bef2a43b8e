package forms

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/atinyakov/AssetDesk/internal/models"
)

func text(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func merge(dst, src Errors) Errors {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = Errors{}
	}
	for k, msg := range src {
		if _, taken := dst[k]; !taken {
			dst[k] = msg
		}
	}
	return dst
}

// Asset decodes and validates an asset form.
func Asset(v url.Values) (models.AssetInput, Errors) {
	in := models.AssetInput{
		Name:          text(v, "name"),
		CategoryID:    text(v, "category_id"),
		DepartmentID:  text(v, "department_id"),
		DatePurchased: text(v, "date_purchased"),
	}

	var errs Errors
	switch raw := text(v, "cost"); raw {
	case "":
		errs = merge(errs, Errors{"cost": "is required"})
	default:
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(cost, 0) || math.IsNaN(cost) {
			errs = merge(errs, Errors{"cost": "must be a number"})
		}
		in.Cost = cost
	}
	return in, merge(errs, Validate(in))
}

// Catalog decodes and validates a category or department form. A blank
// description becomes nil.
func Catalog(v url.Values) (models.CatalogInput, Errors) {
	in := models.CatalogInput{Name: text(v, "name")}
	if d := text(v, "description"); d != "" {
		in.Description = &d
	}
	return in, Validate(in)
}

// User decodes and validates an account form. The password is required
// when creating and ignored when editing.
func User(v url.Values, creating bool) (models.UserInput, Errors) {
	in := models.UserInput{
		FirstName:  text(v, "first_name"),
		LastName:   text(v, "last_name"),
		Email:      text(v, "email"),
		Phone:      text(v, "phone"),
		Role:       models.Role(text(v, "role")),
		Department: text(v, "department"),
	}
	var errs Errors
	if creating {
		in.Password = v.Get("password")
		if in.Password == "" {
			errs = Errors{"password": "is required"}
		}
	}
	return in, merge(errs, Validate(in))
}

// Credentials decodes and validates the sign-in form.
func Credentials(v url.Values) (models.Credentials, Errors) {
	in := models.Credentials{Email: text(v, "email"), Password: v.Get("password")}
	return in, Validate(in)
}
