package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jengzang/hotel-bookings-go/internal/analysis"
	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// Export sheet names
const (
	SheetKPIs         = "KPIs"
	SheetMonthly      = "Monthly Trends"
	SheetHotels       = "Hotels"
	SheetLeadTime     = "Lead Time"
	SheetCountries    = "Countries"
	SheetSegments     = "Market Segments"
	SheetSeasonal     = "Seasonal"
	SheetStayDuration = "Stay Duration"
	SheetADR          = "ADR Distribution"
	SheetSample       = "Sample"
	defaultSheetName  = "Sheet1"
)

// ExportService renders a dashboard view into an xlsx workbook
type ExportService struct {
	dashboard *DashboardService
}

// NewExportService creates a new export service
func NewExportService(dashboard *DashboardService) *ExportService {
	return &ExportService{dashboard: dashboard}
}

// Export builds a workbook with the KPIs, every chart and the configured raw sample of a view
func (s *ExportService) Export(filter models.BookingFilter) ([]byte, error) {
	v, err := s.dashboard.view(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheetName, SheetKPIs); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	kpis := analysis.ComputeKPIs(v)
	display := FormatKPIs(kpis)
	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
	}{
		{SheetKPIs, []string{"Metric", "Value", "Display"}, [][]interface{}{
			{"Total Bookings", kpis.TotalBookings, display.TotalBookings},
			{"Cancellation Rate", kpis.CancellationRate, display.CancellationRate},
			{"Avg Stay", kpis.AvgStay, display.AvgStay},
			{"Total Revenue", kpis.TotalRevenue, display.TotalRevenue},
			{"Avg Daily Rate", kpis.AvgADR, display.AvgADR},
			{"Avg Guests", kpis.AvgGuests, ""},
			{"Avg Lead Time", kpis.AvgLeadTime, ""},
		}},
		{SheetMonthly, []string{"Month", "Bookings", "Cancellation Rate"}, monthlyRows(analysis.MonthlyTrends(v))},
		{SheetHotels, []string{"Hotel", "Bookings", "Cancellation Rate", "Avg Stay", "Avg ADR", "Revenue"}, hotelRows(analysis.HotelComparison(v))},
		{SheetLeadTime, []string{"Lead Time", "Bookings", "Cancellation Rate"}, leadTimeRows(analysis.LeadTimeBreakdown(v))},
		{SheetCountries, []string{"Country", "Bookings", "Cancellation Rate", "Revenue"}, countryRows(analysis.TopCountries(v, analysis.TopCountryLimit))},
		{SheetSegments, []string{"Segment", "Bookings", "Cancellation Rate", "Avg ADR", "Revenue", "Share"}, segmentRows(analysis.MarketSegments(v))},
		{SheetSeasonal, []string{"Season", "Hotel", "Bookings", "Cancellation Rate", "Avg ADR"}, seasonalRows(analysis.SeasonalBreakdown(v))},
		{SheetStayDuration, []string{"Stay", "Bookings", "Cancellation Rate", "Avg ADR"}, stayRows(analysis.StayDurationBreakdown(v))},
		{SheetADR, []string{"Hotel", "Count", "Min", "Q1", "Median", "Q3", "Max"}, adrRows(analysis.ADRDistributionByHotel(v))},
		{SheetSample, sampleHeaders, sampleRows(v.Head(s.dashboard.sampleSize))},
	}

	for i, sheet := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+1, err)
		}
	}
	return nil
}

func monthlyRows(trends []models.MonthlyTrend) [][]interface{} {
	rows := make([][]interface{}, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, []interface{}{t.Label, t.TotalBookings, t.CancellationRate})
	}
	return rows
}

func hotelRows(hotels []models.HotelStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(hotels))
	for _, h := range hotels {
		rows = append(rows, []interface{}{string(h.Hotel), h.TotalBookings, h.CancellationRate, h.AvgStay, h.AvgADR, h.TotalRevenue})
	}
	return rows
}

func leadTimeRows(buckets []models.LeadTimeStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Category.String(), b.TotalBookings, b.CancellationRate})
	}
	return rows
}

func countryRows(countries []models.CountryStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []interface{}{c.Country, c.TotalBookings, c.CancellationRate, c.TotalRevenue})
	}
	return rows
}

func segmentRows(segments []models.SegmentStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []interface{}{s.MarketSegment, s.TotalBookings, s.CancellationRate, s.AvgADR, s.TotalRevenue, s.Share})
	}
	return rows
}

func seasonalRows(cells []models.SeasonalStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []interface{}{c.Season.String(), string(c.Hotel), c.TotalBookings, c.CancellationRate, c.AvgADR})
	}
	return rows
}

func stayRows(buckets []models.StayDurationStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Category.String(), b.TotalBookings, b.CancellationRate, b.AvgADR})
	}
	return rows
}

func adrRows(dists []models.ADRDistribution) [][]interface{} {
	rows := make([][]interface{}, 0, len(dists))
	for _, d := range dists {
		rows = append(rows, []interface{}{string(d.Hotel), d.Count, d.Min, d.Q1, d.Median, d.Q3, d.Max})
	}
	return rows
}

var sampleHeaders = []string{
	"hotel", "is_canceled", "lead_time", "arrival_date", "season",
	"total_nights", "total_guests", "adr", "total_revenue", "country", "market_segment",
}

func sampleRows(bookings []models.Booking) [][]interface{} {
	rows := make([][]interface{}, 0, len(bookings))
	for _, b := range bookings {
		arrival := ""
		if b.ArrivalDate.Valid {
			arrival = b.ArrivalDate.Time.Format("2006-01-02")
		}
		canceled := 0
		if b.IsCanceled {
			canceled = 1
		}
		rows = append(rows, []interface{}{
			string(b.Hotel), canceled, b.LeadTime, arrival, b.Season.String(),
			b.TotalNights, b.TotalGuests, b.ADR, b.TotalRevenue, b.Country, b.MarketSegment,
		})
	}
	return rows
}
