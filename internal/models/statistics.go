package models

import "time"

// KPIMetrics represents the headline scalars of a view
type KPIMetrics struct {
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"` // Percent, 0-100
	AvgStay          float64 `json:"avg_stay"`          // Nights
	TotalRevenue     float64 `json:"total_revenue"`
	AvgADR           float64 `json:"avg_adr"`
	AvgGuests        float64 `json:"avg_guests"`
	AvgLeadTime      float64 `json:"avg_lead_time"` // Days
}

// KPIDisplay holds the formatted KPI strings shown on the metric cards
type KPIDisplay struct {
	TotalBookings    string `json:"total_bookings"`
	CancellationRate string `json:"cancellation_rate"`
	AvgStay          string `json:"avg_stay"`
	TotalRevenue     string `json:"total_revenue"`
	AvgADR           string `json:"avg_adr"`
}

// MonthlyTrend is one (year, month) point of the booking trend
type MonthlyTrend struct {
	Year             int     `json:"year"`
	Month            Month   `json:"month"`
	Label            string  `json:"label"` // "July 2015"
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"`
}

// HotelStats compares hotel categories
type HotelStats struct {
	Hotel            Hotel   `json:"hotel"`
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgStay          float64 `json:"avg_stay"`
	AvgADR           float64 `json:"avg_adr"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// LeadTimeStats is one lead-time bucket
type LeadTimeStats struct {
	Category         LeadTimeCategory `json:"lead_time_category"`
	TotalBookings    int              `json:"total_bookings"`
	CancellationRate float64          `json:"cancellation_rate"`
}

// CountryStats is one country of the geographic distribution
type CountryStats struct {
	Country          string  `json:"country"`
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// SegmentStats is one market segment
type SegmentStats struct {
	MarketSegment    string  `json:"market_segment"`
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgADR           float64 `json:"avg_adr"`
	TotalRevenue     float64 `json:"total_revenue"`
	Share            float64 `json:"share"` // Percent of bookings in the view
}

// SeasonalStats is one (season, hotel) cell
type SeasonalStats struct {
	Season           Season  `json:"season"`
	Hotel            Hotel   `json:"hotel"`
	TotalBookings    int     `json:"total_bookings"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgADR           float64 `json:"avg_adr"`
}

// StayDurationStats is one stay-duration bucket
type StayDurationStats struct {
	Category         StayDurationCategory `json:"stay_duration_category"`
	TotalBookings    int                  `json:"total_bookings"`
	CancellationRate float64              `json:"cancellation_rate"`
	AvgADR           float64              `json:"avg_adr"`
}

// ADRDistribution is the five-number summary of daily rates for a hotel
type ADRDistribution struct {
	Hotel  Hotel   `json:"hotel"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// FilterOptions lists the selectable values for each filter
type FilterOptions struct {
	Hotels    []Hotel  `json:"hotels"`
	Years     []int    `json:"years"`
	Countries []string `json:"countries"` // Top countries by booking volume
	TotalRows int      `json:"total_rows"`
}

// Dashboard is everything the front-end needs for one interaction
type Dashboard struct {
	Filter       BookingFilter          `json:"filter"`
	TotalRows    int                    `json:"total_rows"`    // Rows in the loaded dataset
	FilteredRows int                    `json:"filtered_rows"` // Rows in the view
	KPIs         KPIMetrics             `json:"kpis"`
	KPIDisplay   KPIDisplay             `json:"kpi_display"`
	Charts       map[string]interface{} `json:"charts"`
	Insights     []string               `json:"insights"`
	Sample       []Booking              `json:"sample"`
	LoadedAt     time.Time              `json:"loaded_at"`
}

// KPISummary pairs the KPI scalars of a view with their display strings
type KPISummary struct {
	Filter       BookingFilter `json:"filter"`
	FilteredRows int           `json:"filtered_rows"`
	KPIs         KPIMetrics    `json:"kpis"`
	Display      KPIDisplay    `json:"display"`
}
