package models

import "time"

// LoadReport summarizes one load of the booking source
type LoadReport struct {
	ID int64 `json:"id,omitempty" db:"id"`

	// Source identity
	Source    string    `json:"source" db:"source"`
	ModTime   time.Time `json:"mod_time" db:"mod_time"`
	SizeBytes int64     `json:"size_bytes" db:"size_bytes"`

	// Row accounting
	RowsRead            int `json:"rows_read" db:"rows_read"`
	RowsRetained        int `json:"rows_retained" db:"rows_retained"`
	DroppedNoAdults     int `json:"dropped_no_adults" db:"dropped_no_adults"`
	DroppedNegativeRate int `json:"dropped_negative_rate" db:"dropped_negative_rate"`
	DroppedMalformed    int `json:"dropped_malformed" db:"dropped_malformed"`
	NullArrivalDates    int `json:"null_arrival_dates" db:"null_arrival_dates"`
	MissingGuestCounts  int `json:"missing_guest_counts" db:"missing_guest_counts"`

	// Timing
	LoadedAt   time.Time `json:"loaded_at" db:"loaded_at"`
	DurationMS int64     `json:"duration_ms" db:"duration_ms"`
}

// Dropped returns the total number of rows excluded at load
func (r LoadReport) Dropped() int {
	return r.DroppedNoAdults + r.DroppedNegativeRate + r.DroppedMalformed
}
