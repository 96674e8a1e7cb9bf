package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AllValues is the selector value meaning "no filter"
const AllValues = "All"

// BookingFilter holds the three optional equality predicates of a dashboard view.
// Zero values mean "no filter".
type BookingFilter struct {
	Hotel   Hotel  `json:"hotel,omitempty"`
	Year    int    `json:"year,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsEmpty reports whether no predicate is active
func (f BookingFilter) IsEmpty() bool {
	return f.Hotel == "" && f.Year == 0 && f.Country == ""
}

// Matches reports whether a booking satisfies every active predicate
func (f BookingFilter) Matches(b *Booking) bool {
	if f.Hotel != "" && b.Hotel != f.Hotel {
		return false
	}
	if f.Year != 0 && b.ArrivalYear != f.Year {
		return false
	}
	if f.Country != "" && b.Country != f.Country {
		return false
	}
	return true
}

// FilterQuery represents the filter query parameters of dashboard endpoints
type FilterQuery struct {
	Hotel   string `form:"hotel"`   // City Hotel, Resort Hotel, All
	Year    string `form:"year"`    // YYYY, All
	Country string `form:"country"` // ISO code, All
}

// ToFilter converts query parameters into a BookingFilter.
// Only a non-numeric year is rejected; unknown hotels and countries are kept
// as-is so they select an empty view.
func (q FilterQuery) ToFilter() (BookingFilter, error) {
	var f BookingFilter

	if hotel := selected(q.Hotel); hotel != "" {
		if h, err := ParseHotel(hotel); err == nil {
			f.Hotel = h
		} else {
			f.Hotel = Hotel(hotel)
		}
	}

	if year := selected(q.Year); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			return BookingFilter{}, fmt.Errorf("invalid year %q", q.Year)
		}
		f.Year = y
	}

	f.Country = selected(q.Country)
	return f, nil
}

func selected(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, AllValues) {
		return ""
	}
	return v
}

// LimitQuery represents a bounded list request
type LimitQuery struct {
	Limit int `form:"limit"`
}
