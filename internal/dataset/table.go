package dataset

import (
	"time"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// Table is the immutable, derived booking table produced by a load.
// It is shared read-only between all requests and never modified after construction.
type Table struct {
	rows   []models.Booking
	report models.LoadReport
}

// NewTable derives and validates already-typed bookings, applying the same row
// rules as a file load: negative lead time or nights, zero-adult and
// negative-rate rows are dropped.
func NewTable(source string, bookings []models.Booking) *Table {
	b := newTableBuilder(source, len(bookings))
	for _, booking := range bookings {
		b.add(booking)
	}
	return b.build(time.Now())
}

// Len returns the number of retained rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th retained row. Callers must treat it as read-only.
func (t *Table) Row(i int) *models.Booking {
	return &t.rows[i]
}

// Report returns the diagnostics of the load that produced the table
func (t *Table) Report() models.LoadReport {
	return t.report
}

// tableBuilder applies the load-time row rules and keeps the row accounting
type tableBuilder struct {
	rows   []models.Booking
	report models.LoadReport
	start  time.Time
}

func newTableBuilder(source string, capacity int) *tableBuilder {
	return &tableBuilder{
		rows:   make([]models.Booking, 0, capacity),
		report: models.LoadReport{Source: source},
		start:  time.Now(),
	}
}

func (b *tableBuilder) malformed() {
	b.report.RowsRead++
	b.report.DroppedMalformed++
}

func (b *tableBuilder) add(booking models.Booking) {
	b.report.RowsRead++

	if booking.LeadTime < 0 || booking.StaysInWeekendNights < 0 || booking.StaysInWeekNights < 0 {
		b.report.DroppedMalformed++
		return
	}

	Derive(&booking)

	if booking.Adults <= 0 {
		b.report.DroppedNoAdults++
		return
	}
	if booking.ADR < 0 {
		b.report.DroppedNegativeRate++
		return
	}
	if !booking.ArrivalDate.Valid {
		b.report.NullArrivalDates++
	}

	b.rows = append(b.rows, booking)
}

func (b *tableBuilder) build(now time.Time) *Table {
	b.report.RowsRetained = len(b.rows)
	b.report.LoadedAt = now
	b.report.DurationMS = now.Sub(b.start).Milliseconds()
	return &Table{rows: b.rows, report: b.report}
}
