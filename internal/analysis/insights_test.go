package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

func insightsFor(v *View) []string {
	return GenerateInsights(v, ComputeKPIs(v))
}

func TestGenerateInsights(t *testing.T) {
	got := insightsFor(NewView(sampleTable()))

	want := []string{
		"High cancellation rate (40.0%) - consider implementing retention strategies",
		"City hotels perform better with 33.3% vs 50.0% cancellation rate",
	}
	if len(got) != 3 {
		t.Fatalf("got %d insights, want 3: %v", len(got), got)
	}
	if !reflect.DeepEqual(got[:2], want) {
		t.Errorf("insights = %v, want prefix %v", got, want)
	}
	if !strings.HasPrefix(got[2], "Cancellations rise with lead time") {
		t.Errorf("expected lead time insight, got %q", got[2])
	}
}

func TestGenerateInsightsHealthy(t *testing.T) {
	v := NewView(newTestTable(
		bookingFixture{hotel: models.HotelCity, year: 2016, month: 5, segment: "Direct", lead: 10, nights: 3, adr: 90},
		bookingFixture{hotel: models.HotelCity, year: 2016, month: 6, segment: "Groups", lead: 40, nights: 3, adr: 95},
	))

	got := insightsFor(v)
	if !reflect.DeepEqual(got, []string{HealthyInsight}) {
		t.Errorf("insights = %v, want healthy", got)
	}
}

func TestGenerateInsightsStayAndConcentration(t *testing.T) {
	v := NewView(newTestTable(
		bookingFixture{hotel: models.HotelResort, year: 2016, month: 5, segment: "Direct", lead: 10, nights: 1, adr: 90},
		bookingFixture{hotel: models.HotelResort, year: 2016, month: 6, segment: "Direct", lead: 40, nights: 1, adr: 95},
	))

	got := insightsFor(v)
	want := []string{
		"Short average stay - opportunity to promote longer packages",
		"Bookings are concentrated in the Direct segment (100.0%) - diversify distribution channels",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("insights = %v, want %v", got, want)
	}
}

func TestGenerateInsightsEmptyView(t *testing.T) {
	v := Filter(sampleTable(), models.BookingFilter{Year: 1990})
	if got := insightsFor(v); len(got) != 0 {
		t.Errorf("empty view insights = %v, want none", got)
	}
}

func TestBuildFilterOptions(t *testing.T) {
	opts := BuildFilterOptions(sampleTable())

	if !reflect.DeepEqual(opts.Hotels, []models.Hotel{models.HotelCity, models.HotelResort}) {
		t.Errorf("hotels = %v", opts.Hotels)
	}
	if !reflect.DeepEqual(opts.Years, []int{2015, 2016, 2017}) {
		t.Errorf("years = %v", opts.Years)
	}
	if !reflect.DeepEqual(opts.Countries, []string{"PRT", "ESP", "GBR"}) {
		t.Errorf("countries = %v", opts.Countries)
	}
	if opts.TotalRows != 5 {
		t.Errorf("total rows = %d, want 5", opts.TotalRows)
	}
}
