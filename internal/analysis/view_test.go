package analysis

import (
	"testing"

	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/models"
)

type bookingFixture struct {
	hotel    models.Hotel
	year     int
	month    int
	day      int
	country  string
	segment  string
	canceled bool
	lead     int
	nights   int
	adr      float64
}

func (s bookingFixture) booking() models.Booking {
	day := s.day
	if day == 0 {
		day = 1
	}
	return models.Booking{
		Hotel:             s.hotel,
		IsCanceled:        s.canceled,
		LeadTime:          s.lead,
		ArrivalYear:       s.year,
		ArrivalMonth:      models.Month(s.month),
		ArrivalDayOfMonth: day,
		StaysInWeekNights: s.nights,
		Adults:            2,
		ADR:               s.adr,
		Country:           s.country,
		MarketSegment:     s.segment,
	}
}

func newTestTable(fixtures ...bookingFixture) *dataset.Table {
	bookings := make([]models.Booking, len(fixtures))
	for i, s := range fixtures {
		bookings[i] = s.booking()
	}
	return dataset.NewTable("test", bookings)
}

func sampleTable() *dataset.Table {
	return newTestTable(
		bookingFixture{hotel: models.HotelCity, year: 2016, month: 7, country: "PRT", segment: "Online TA", canceled: true, lead: 120, nights: 2, adr: 100},
		bookingFixture{hotel: models.HotelCity, year: 2016, month: 7, country: "GBR", segment: "Online TA", lead: 5, nights: 3, adr: 80},
		bookingFixture{hotel: models.HotelResort, year: 2015, month: 12, country: "PRT", segment: "Direct", lead: 0, nights: 7, adr: 150},
		bookingFixture{hotel: models.HotelResort, year: 2017, month: 2, day: 30, country: "ESP", segment: "Groups", canceled: true, lead: 200, nights: 1, adr: 60},
		bookingFixture{hotel: models.HotelCity, year: 2017, month: 4, country: "", segment: "Corporate", lead: 20, nights: 1, adr: 90},
	)
}

func TestNewViewCoversTable(t *testing.T) {
	table := sampleTable()
	v := NewView(table)
	if v.Len() != table.Len() {
		t.Fatalf("view has %d rows, want %d", v.Len(), table.Len())
	}
	if v.Table() != table {
		t.Errorf("view should reference its table")
	}
}

func TestFilterComposesWithAnd(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		filter models.BookingFilter
		want   int
	}{
		{"no filter", models.BookingFilter{}, 5},
		{"hotel", models.BookingFilter{Hotel: models.HotelCity}, 3},
		{"year", models.BookingFilter{Year: 2016}, 2},
		{"country", models.BookingFilter{Country: "PRT"}, 2},
		{"hotel and country", models.BookingFilter{Hotel: models.HotelResort, Country: "PRT"}, 1},
		{"all three", models.BookingFilter{Hotel: models.HotelCity, Year: 2016, Country: "GBR"}, 1},
		{"unknown country", models.BookingFilter{Country: "ZZZ"}, 0},
		{"unknown hotel", models.BookingFilter{Hotel: "Motel"}, 0},
		{"unknown year", models.BookingFilter{Year: 1999}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Filter(table, tt.filter)
			if v.Len() != tt.want {
				t.Errorf("Filter(%+v) has %d rows, want %d", tt.filter, v.Len(), tt.want)
			}
			v.Each(func(b *models.Booking) {
				if !tt.filter.Matches(b) {
					t.Errorf("row %+v does not match %+v", b, tt.filter)
				}
			})
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	table := sampleTable()
	f := models.BookingFilter{Hotel: models.HotelCity, Year: 2016}

	once := Filter(table, f)
	twice := once.Filter(f)

	if once.Len() != twice.Len() {
		t.Fatalf("filtering twice changed length: %d vs %d", once.Len(), twice.Len())
	}
	for i := 0; i < once.Len(); i++ {
		if once.Row(i) != twice.Row(i) {
			t.Errorf("row %d differs after second filter", i)
		}
	}
}

func TestFilterDoesNotMutateTable(t *testing.T) {
	table := sampleTable()
	before := *table.Row(0)

	Filter(table, models.BookingFilter{Country: "GBR"})

	if table.Len() != 5 {
		t.Errorf("table length changed to %d", table.Len())
	}
	if *table.Row(0) != before {
		t.Errorf("table row changed by filtering")
	}
}

func TestHead(t *testing.T) {
	v := NewView(sampleTable())

	if got := len(v.Head(2)); got != 2 {
		t.Errorf("Head(2) returned %d rows", got)
	}
	if got := len(v.Head(100)); got != 5 {
		t.Errorf("Head(100) returned %d rows, want 5", got)
	}
	if got := len(v.Head(-1)); got != 0 {
		t.Errorf("Head(-1) returned %d rows, want 0", got)
	}

	head := v.Head(1)
	head[0].ADR = -1
	if v.Row(0).ADR == -1 {
		t.Errorf("Head should copy rows out of the table")
	}
}
