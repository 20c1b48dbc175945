// Package checkout holds the checkout form: typed fields, field-level
// validation with a discriminated result, and per-session draft persistence
// so a returning visitor finds their last entered values pre-filled.
package checkout

import (
	"regexp"
	"strings"

	"shei-hoise-api/internal/domain"
)

// Form is the set of fields checkout collects from the buyer.
type Form struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
}

// Result is the outcome of validating a Form. When OK is false, Errors maps
// field names to messages suitable for rendering next to the field.
type Result struct {
	OK     bool              `json:"ok"`
	Errors map[string]string `json:"errors,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the form and returns field-level errors. It never
// mutates the form; trimming is applied only for the checks.
func (f Form) Validate() Result {
	errs := map[string]string{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "name is required"
	}
	if email := strings.TrimSpace(f.Email); email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is invalid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "phone is required"
	}
	if strings.TrimSpace(f.Country) == "" {
		errs["country"] = "country is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "address is required"
	}

	if len(errs) > 0 {
		return Result{OK: false, Errors: errs}
	}
	return Result{OK: true}
}

// CustomerDetails converts the form into the order-layer customer record.
func (f Form) CustomerDetails() domain.CustomerDetails {
	return domain.CustomerDetails{
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Name:     strings.TrimSpace(f.Name),
		Country:  strings.TrimSpace(f.Country),
		City:     strings.TrimSpace(f.City),
		Address:  strings.TrimSpace(f.Address),
		Postcode: strings.TrimSpace(f.Postcode),
	}
}
