package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Booking represents one reservation row plus the attributes derived from it at load time
type Booking struct {
	// Raw columns
	Hotel                Hotel   `json:"hotel" db:"hotel"`
	IsCanceled           bool    `json:"is_canceled" db:"is_canceled"`
	LeadTime             int     `json:"lead_time" db:"lead_time"` // Days
	ArrivalYear          int     `json:"arrival_date_year" db:"arrival_date_year"`
	ArrivalMonth         Month   `json:"arrival_date_month" db:"arrival_date_month"`
	ArrivalDayOfMonth    int     `json:"arrival_date_day_of_month" db:"arrival_date_day_of_month"`
	StaysInWeekendNights int     `json:"stays_in_weekend_nights" db:"stays_in_weekend_nights"`
	StaysInWeekNights    int     `json:"stays_in_week_nights" db:"stays_in_week_nights"`
	Adults               int     `json:"adults" db:"adults"`
	Children             int     `json:"children" db:"children"`
	Babies               int     `json:"babies" db:"babies"`
	ADR                  float64 `json:"adr" db:"adr"` // Average daily rate
	Country              string  `json:"country,omitempty" db:"country"` // Empty when unknown
	MarketSegment        string  `json:"market_segment" db:"market_segment"`

	// Derived columns
	TotalNights          int                  `json:"total_nights"`
	TotalGuests          int                  `json:"total_guests"`
	ArrivalDate          NullDate             `json:"arrival_date"`
	Season               Season               `json:"season"`
	LeadTimeCategory     LeadTimeCategory     `json:"lead_time_category"`
	StayDurationCategory StayDurationCategory `json:"stay_duration_category"`
	TotalRevenue         float64              `json:"total_revenue"`
}

// Hotel is the closed set of hotel categories in the dataset
type Hotel string

// Hotel constants
const (
	HotelCity   Hotel = "City Hotel"
	HotelResort Hotel = "Resort Hotel"
)

// ParseHotel maps a raw hotel label onto a Hotel
func ParseHotel(s string) (Hotel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "city hotel", "city":
		return HotelCity, nil
	case "resort hotel", "resort":
		return HotelResort, nil
	}
	return "", fmt.Errorf("unknown hotel category %q", s)
}

// Month is a calendar month, serialized by its English name
type Month time.Month

// ParseMonth accepts an English month name ("July", "jul") or a month number ("7")
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return Month(n), nil
		}
		return 0, fmt.Errorf("month number %d out of range", n)
	}

	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return Month(m), nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

func (m Month) String() string {
	return time.Month(m).String()
}

// MarshalJSON writes the month name
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// NullDate is an arrival date that may be absent when year/month/day do not form a real date
type NullDate struct {
	Time  time.Time
	Valid bool
}

// MarshalJSON writes YYYY-MM-DD, or null when the date is absent
func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}
