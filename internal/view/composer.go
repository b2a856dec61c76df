// Package view turns repository result sets into the typed view models the
// templates render. The composer owns all display formatting (currency,
// mileage separators, dropdown selection) so handlers pass domain records
// through untouched and templates stay free of logic.
package view

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/validation"
)

// english formats prices and mileages with US thousands separators.
var english = message.NewPrinter(language.English)

// Page carries the fields every template needs: the tab title, the
// classification navigation, an optional one-time notice and the field
// errors of a failed submission.
type Page struct {
	Title  string
	Nav    []NavItem
	Notice string
	Errors []validation.FieldError
}

// NavItem is one classification link in the site navigation.
type NavItem struct {
	ID   uint64
	Name string
}

// VehicleCard is one entry in the classification grid.
type VehicleCard struct {
	ID        uint64
	Make      string
	Model     string
	Year      string
	Thumbnail string
	Price     string // formatted, e.g. "$24,500"
}

// VehicleDetail is the full single-vehicle view.
type VehicleDetail struct {
	ID          uint64
	Make        string
	Model       string
	Year        string
	Description string
	Image       string
	Price       string // formatted
	Miles       string // formatted, empty when unknown
	Color       string // empty when unknown
}

// Option is one entry of the classification dropdown.
type Option struct {
	ID       uint64
	Name     string
	Selected bool
}

// Nav builds the navigation items from the classification list. An empty
// list yields an empty slice; the Home link is part of the template.
func Nav(classifications []*repository.Classification) []NavItem {
	out := make([]NavItem, 0, len(classifications))
	for _, c := range classifications {
		out = append(out, NavItem{ID: c.ID, Name: c.Name})
	}
	return out
}

// Grid builds the vehicle cards for a classification listing. The caller
// renders the "no matching vehicles" notice when the slice is empty.
func Grid(vehicles []*repository.Vehicle) []VehicleCard {
	out := make([]VehicleCard, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleCard{
			ID:        v.ID,
			Make:      v.Make,
			Model:     v.Model,
			Year:      v.Year,
			Thumbnail: v.Thumbnail,
			Price:     FormatPrice(v.Price),
		})
	}
	return out
}

// Detail builds the single-vehicle view model with formatted price and
// mileage.
func Detail(v *repository.Vehicle) VehicleDetail {
	d := VehicleDetail{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Description: v.Description,
		Image:       v.Image,
		Price:       FormatPrice(v.Price),
	}
	if v.Miles.Valid {
		d.Miles = FormatMiles(v.Miles.Int64)
	}
	if v.Color.Valid {
		d.Color = v.Color.String
	}
	return d
}

// Options builds the classification dropdown with the given id pre-selected.
// On a sticky re-render the selected id is the one the user submitted, not
// the stored one.
func Options(classifications []*repository.Classification, selectedID uint64) []Option {
	out := make([]Option, 0, len(classifications))
	for _, c := range classifications {
		out = append(out, Option{ID: c.ID, Name: c.Name, Selected: c.ID == selectedID})
	}
	return out
}

// FormatPrice renders a price as whole US dollars with thousands
// separators.
func FormatPrice(p float64) string {
	return english.Sprintf("$%d", int64(math.Round(p)))
}

// FormatMiles renders a mileage with thousands separators.
func FormatMiles(m int64) string {
	return english.Sprintf("%d", m)
}
