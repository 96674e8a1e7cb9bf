package analysis

import (
	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/stats"
)

// LeadTimeBreakdown tallies every lead-time bucket in bucket order.
// Empty buckets are included; an empty view yields no rows.
func LeadTimeBreakdown(v *View) []models.LeadTimeStats {
	result := make([]models.LeadTimeStats, 0, len(models.LeadTimeCategories))
	if v.Len() == 0 {
		return result
	}

	buckets := make([]tally, len(models.LeadTimeCategories))
	v.Each(func(b *models.Booking) {
		buckets[b.LeadTimeCategory].add(b)
	})

	for _, c := range models.LeadTimeCategories {
		t := &buckets[c]
		result = append(result, models.LeadTimeStats{
			Category:         c,
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
		})
	}
	return result
}

// StayDurationBreakdown tallies every stay-duration bucket in bucket order
func StayDurationBreakdown(v *View) []models.StayDurationStats {
	result := make([]models.StayDurationStats, 0, len(models.StayDurationCategories))
	if v.Len() == 0 {
		return result
	}

	buckets := make([]tally, len(models.StayDurationCategories))
	v.Each(func(b *models.Booking) {
		buckets[b.StayDurationCategory].add(b)
	})

	for _, c := range models.StayDurationCategories {
		t := &buckets[c]
		result = append(result, models.StayDurationStats{
			Category:         c,
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
			AvgADR:           t.mean(t.adr),
		})
	}
	return result
}

// ADRDistributionByHotel summarizes the daily rate spread of each hotel, alphabetically
func ADRDistributionByHotel(v *View) []models.ADRDistribution {
	rates := make(map[string][]float64)
	v.Each(func(b *models.Booking) {
		rates[string(b.Hotel)] = append(rates[string(b.Hotel)], b.ADR)
	})

	_, keys := groupByString(v, func(b *models.Booking) string { return string(b.Hotel) })

	result := make([]models.ADRDistribution, 0, len(keys))
	for _, k := range keys {
		values := rates[k]
		min, q1, median, q3, max := stats.FiveNumberSummary(values)
		result = append(result, models.ADRDistribution{
			Hotel:  models.Hotel(k),
			Count:  len(values),
			Min:    min,
			Q1:     q1,
			Median: median,
			Q3:     q3,
			Max:    max,
		})
	}
	return result
}
