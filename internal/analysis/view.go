package analysis

import (
	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// View is a read-only selection of rows of a Table.
// It holds row indices only; the table is never copied or modified.
type View struct {
	table   *dataset.Table
	indices []int
}

// NewView returns a view over every row of the table
func NewView(table *dataset.Table) *View {
	n := table.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return &View{table: table, indices: indices}
}

// Filter returns the view of table rows matching every active predicate of f
func Filter(table *dataset.Table, f models.BookingFilter) *View {
	return NewView(table).Filter(f)
}

// Filter narrows the view in a single pass. An empty filter returns the view itself.
func (v *View) Filter(f models.BookingFilter) *View {
	if f.IsEmpty() {
		return v
	}

	indices := make([]int, 0, len(v.indices))
	for _, i := range v.indices {
		if f.Matches(v.table.Row(i)) {
			indices = append(indices, i)
		}
	}
	return &View{table: v.table, indices: indices}
}

// Len returns the number of rows in the view
func (v *View) Len() int {
	return len(v.indices)
}

// Row returns the i-th row of the view
func (v *View) Row(i int) *models.Booking {
	return v.table.Row(v.indices[i])
}

// Each calls fn for every row in view order
func (v *View) Each(fn func(b *models.Booking)) {
	for _, i := range v.indices {
		fn(v.table.Row(i))
	}
}

// Head copies out the first n rows of the view
func (v *View) Head(n int) []models.Booking {
	if n > len(v.indices) {
		n = len(v.indices)
	}
	if n < 0 {
		n = 0
	}

	rows := make([]models.Booking, n)
	for i := 0; i < n; i++ {
		rows[i] = *v.Row(i)
	}
	return rows
}

// Table returns the table the view selects from
func (v *View) Table() *dataset.Table {
	return v.table
}
