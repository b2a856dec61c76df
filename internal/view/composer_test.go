package view

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csemotors/motors/internal/repository"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$24,500", FormatPrice(24500))
	assert.Equal(t, "$1,234,567", FormatPrice(1234567))
	assert.Equal(t, "$0", FormatPrice(0))
	// Prices are displayed as whole dollars.
	assert.Equal(t, "$32,000", FormatPrice(31999.5))
}

func TestFormatMiles(t *testing.T) {
	assert.Equal(t, "123,456", FormatMiles(123456))
	assert.Equal(t, "900", FormatMiles(900))
}

func TestNav(t *testing.T) {
	nav := Nav([]*repository.Classification{
		{ID: 3, Name: "SUV"},
		{ID: 1, Name: "Truck"},
	})
	require.Len(t, nav, 2)
	assert.Equal(t, NavItem{ID: 3, Name: "SUV"}, nav[0])

	assert.Empty(t, Nav(nil))
}

func TestGrid(t *testing.T) {
	cards := Grid([]*repository.Vehicle{{
		ID: 1, Make: "Jeep", Model: "Wrangler", Year: "2021",
		Thumbnail: "/images/wrangler-tn.jpg", Price: 28500,
	}})
	require.Len(t, cards, 1)
	assert.Equal(t, "Jeep", cards[0].Make)
	assert.Equal(t, "$28,500", cards[0].Price)

	assert.Empty(t, Grid(nil))
}

func TestDetailOptionalFields(t *testing.T) {
	full := Detail(&repository.Vehicle{
		ID: 5, Make: "Ford", Model: "F-150", Year: "2019",
		Description: "Workhorse.", Image: "/images/f150.jpg", Price: 31999,
		Miles: sql.NullInt64{Int64: 42000, Valid: true},
		Color: sql.NullString{String: "Red", Valid: true},
	})
	assert.Equal(t, "$31,999", full.Price)
	assert.Equal(t, "42,000", full.Miles)
	assert.Equal(t, "Red", full.Color)

	sparse := Detail(&repository.Vehicle{ID: 6, Make: "DMC", Model: "DeLorean", Year: "1981", Price: 100000})
	assert.Empty(t, sparse.Miles)
	assert.Empty(t, sparse.Color)
}

func TestOptionsSelection(t *testing.T) {
	cls := []*repository.Classification{
		{ID: 1, Name: "Truck"},
		{ID: 3, Name: "SUV"},
	}
	opts := Options(cls, 3)
	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)

	// Zero means nothing pre-selected.
	for _, o := range Options(cls, 0) {
		assert.False(t, o.Selected)
	}
}
