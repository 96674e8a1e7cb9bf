package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// FormatKPIs renders the metric-card strings with English digit grouping
func FormatKPIs(kpis models.KPIMetrics) models.KPIDisplay {
	p := message.NewPrinter(language.English)
	return models.KPIDisplay{
		TotalBookings:    p.Sprintf("%d", kpis.TotalBookings),
		CancellationRate: p.Sprintf("%.1f%%", kpis.CancellationRate),
		AvgStay:          p.Sprintf("%.1f nights", kpis.AvgStay),
		TotalRevenue:     p.Sprintf("$%.0f", kpis.TotalRevenue),
		AvgADR:           p.Sprintf("$%.2f", kpis.AvgADR),
	}
}
