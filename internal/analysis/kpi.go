package analysis

import (
	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/stats"
)

// tally accumulates the reducers shared by KPIs and every grouped aggregate
type tally struct {
	count    int
	canceled int
	nights   float64
	adr      float64
	revenue  float64
	guests   float64
	leadTime float64
}

func (t *tally) add(b *models.Booking) {
	t.count++
	if b.IsCanceled {
		t.canceled++
	}
	t.nights += float64(b.TotalNights)
	t.adr += b.ADR
	t.revenue += b.TotalRevenue
	t.guests += float64(b.TotalGuests)
	t.leadTime += float64(b.LeadTime)
}

func (t *tally) cancellationRate() float64 {
	return stats.Percent(t.canceled, t.count)
}

func (t *tally) mean(sum float64) float64 {
	return stats.Ratio(sum, float64(t.count))
}

// ComputeKPIs reduces a view to its headline metrics. An empty view yields zeros.
func ComputeKPIs(v *View) models.KPIMetrics {
	var t tally
	v.Each(t.add)

	return models.KPIMetrics{
		TotalBookings:    t.count,
		CancellationRate: t.cancellationRate(),
		AvgStay:          t.mean(t.nights),
		TotalRevenue:     t.revenue,
		AvgADR:           t.mean(t.adr),
		AvgGuests:        t.mean(t.guests),
		AvgLeadTime:      t.mean(t.leadTime),
	}
}
