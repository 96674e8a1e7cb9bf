package analysis

import (
	"sort"

	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// OptionCountryLimit is the number of countries offered by the country selector
const OptionCountryLimit = 20

// BuildFilterOptions lists the selectable hotels, years and top countries of a table
func BuildFilterOptions(table *dataset.Table) models.FilterOptions {
	view := NewView(table)

	hotels := make([]models.Hotel, 0, 2)
	for _, h := range HotelComparison(view) {
		hotels = append(hotels, h.Hotel)
	}

	seen := make(map[int]bool)
	years := make([]int, 0, 4)
	view.Each(func(b *models.Booking) {
		if !seen[b.ArrivalYear] {
			seen[b.ArrivalYear] = true
			years = append(years, b.ArrivalYear)
		}
	})
	sort.Ints(years)

	top := TopCountries(view, OptionCountryLimit)
	countries := make([]string, 0, len(top))
	for _, c := range top {
		countries = append(countries, c.Country)
	}

	return models.FilterOptions{
		Hotels:    hotels,
		Years:     years,
		Countries: countries,
		TotalRows: table.Len(),
	}
}
