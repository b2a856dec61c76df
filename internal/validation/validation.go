// Package validation holds the declarative field rules for every form on the
// site. Each Validate* function applies its rules in order against the
// submitted values and returns the accumulated field errors; an empty slice
// means the workflow may proceed. Handlers re-render the originating form
// with the full list and the submitted values echoed back when the slice is
// non-empty.
package validation

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// FieldError pairs a form field name with a user-facing message. Errors are
// per-request and never persisted.
type FieldError struct {
	Field   string
	Message string
}

var alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ClassificationForm carries the one field of the add-classification form.
type ClassificationForm struct {
	Name string
}

// InventoryForm carries the add/update inventory fields exactly as
// submitted. Everything is a string so a failed submission can be echoed
// back without losing what the user typed.
type InventoryForm struct {
	InvID            string // present on update only
	VIN              string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
	ClassificationID string
}

// RegistrationForm carries the registration fields as submitted.
type RegistrationForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginForm carries the login fields as submitted.
type LoginForm struct {
	Email    string
	Password string
}

// Trim normalizes a classification form in place.
func (f *ClassificationForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
}

// Trim normalizes an inventory form in place. The password-free string
// fields are trimmed; numeric parsing happens later in the handler once the
// rules have passed.
func (f *InventoryForm) Trim() {
	f.InvID = strings.TrimSpace(f.InvID)
	f.VIN = strings.TrimSpace(f.VIN)
	f.Make = strings.TrimSpace(f.Make)
	f.Model = strings.TrimSpace(f.Model)
	f.Year = strings.TrimSpace(f.Year)
	f.Description = strings.TrimSpace(f.Description)
	f.Image = strings.TrimSpace(f.Image)
	f.Thumbnail = strings.TrimSpace(f.Thumbnail)
	f.Price = strings.TrimSpace(f.Price)
	f.Miles = strings.TrimSpace(f.Miles)
	f.Color = strings.TrimSpace(f.Color)
	f.ClassificationID = strings.TrimSpace(f.ClassificationID)
}

// Trim normalizes a registration form in place. Emails are lower-cased so
// lookups and the unique index see one canonical form.
func (f *RegistrationForm) Trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

// Trim normalizes a login form in place.
func (f *LoginForm) Trim() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

// Classification: name is required and must be strictly alphanumeric, no
// whitespace or punctuation.
func Classification(f ClassificationForm) []FieldError {
	var errs []FieldError
	if f.Name == "" {
		errs = append(errs, FieldError{"classification_name", "Classification name is required."})
	} else if !alphanumeric.MatchString(f.Name) {
		errs = append(errs, FieldError{"classification_name", "Classification name must be alphanumeric with no spaces or special characters."})
	}
	return errs
}

// Inventory: vin, make, model and description are required; year must be
// exactly four digits; classification_id must parse as an integer.
func Inventory(f InventoryForm) []FieldError {
	var errs []FieldError
	if f.VIN == "" {
		errs = append(errs, FieldError{"inv_vin", "VIN is required."})
	}
	if f.Make == "" {
		errs = append(errs, FieldError{"inv_make", "Make is required."})
	}
	if f.Model == "" {
		errs = append(errs, FieldError{"inv_model", "Model is required."})
	}
	if !isYear(f.Year) {
		errs = append(errs, FieldError{"inv_year", "Year must be 4 digits."})
	}
	if f.Description == "" {
		errs = append(errs, FieldError{"inv_description", "Description is required."})
	}
	if _, err := strconv.ParseUint(f.ClassificationID, 10, 64); err != nil {
		errs = append(errs, FieldError{"classification_id", "Classification is required."})
	}
	return errs
}

// Registration: first name required, last name at least two characters,
// valid email syntax, and a strong password (min 12, one lowercase, one
// uppercase, one digit, one symbol).
func Registration(f RegistrationForm) []FieldError {
	var errs []FieldError
	if f.FirstName == "" {
		errs = append(errs, FieldError{"account_firstname", "Please provide a first name."})
	}
	if len(f.LastName) < 2 {
		errs = append(errs, FieldError{"account_lastname", "Please provide a last name."})
	}
	if !isEmail(f.Email) {
		errs = append(errs, FieldError{"account_email", "A valid email is required."})
	}
	if !isStrongPassword(f.Password) {
		errs = append(errs, FieldError{"account_password", "Password does not meet requirements."})
	}
	return errs
}

// Login: valid email syntax and a non-empty password. The upstream design
// applied the registration strength rule here too, which locks out accounts
// whose passwords predate the policy; login only checks that a password was
// entered and leaves the real decision to the hash comparison.
func Login(f LoginForm) []FieldError {
	var errs []FieldError
	if !isEmail(f.Email) {
		errs = append(errs, FieldError{"account_email", "A valid email is required."})
	}
	if f.Password == "" {
		errs = append(errs, FieldError{"account_password", "Password is required."})
	}
	return errs
}

// isYear reports whether s is exactly four ASCII digits.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isEmail validates address syntax. mail.ParseAddress accepts the
// display-name form, so reject anything that does not round-trip to the
// bare address.
func isEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// isStrongPassword enforces the registration policy: minimum length 12 with
// at least one lowercase letter, one uppercase letter, one digit and one
// symbol.
func isStrongPassword(s string) bool {
	if len(s) < 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
