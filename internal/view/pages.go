package view

import "github.com/csemotors/motors/internal/validation"

// Per-template view models. Each embeds Page so the shared partials can
// reach Title, Nav, Notice and Errors directly.

// HomePage backs the "index" template.
type HomePage struct {
	Page
}

// GridPage backs "inventory/classification". GridNotice is shown instead of
// the card list when the classification holds no vehicles.
type GridPage struct {
	Page
	Grid       []VehicleCard
	GridNotice string
}

// DetailPage backs "inventory/detail". DetailNotice is shown instead of the
// vehicle when the id did not resolve.
type DetailPage struct {
	Page
	Vehicle      VehicleDetail
	DetailNotice string
}

// ManagementPage backs "inventory/management": the classification list plus
// both add forms. ClassificationName and Form echo submitted values after a
// failed add.
type ManagementPage struct {
	Page
	Classifications    []NavItem
	ClassificationName string
	Form               validation.InventoryForm
	Options            []Option
}

// EditPage backs "inventory/edit". Form holds either the stored record or,
// after a failed update, exactly what the user submitted.
type EditPage struct {
	Page
	Form    validation.InventoryForm
	Options []Option
}

// DeletePage backs "inventory/delete": the read-only confirmation view.
type DeletePage struct {
	Page
	ID    uint64
	Make  string
	Model string
	Year  string
	Price string
}

// LoginPage backs "account/login".
type LoginPage struct {
	Page
	Email string
}

// RegistrationPage backs "account/registration".
type RegistrationPage struct {
	Page
	FirstName string
	LastName  string
	Email     string
}

// AccountPage backs "account/management".
type AccountPage struct {
	Page
	FirstName string
}

// ErrorPage backs "errors/error", rendered by the central error responder.
type ErrorPage struct {
	Page
	Status  int
	Message string
}
