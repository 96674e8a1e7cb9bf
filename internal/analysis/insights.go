package analysis

import (
	"fmt"

	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/stats"
)

// Insight thresholds
const (
	HighCancellationRate    = 35.0
	ShortStayNights         = 2.0
	LongStayNights          = 5.0
	LeadTimeRiskCorrelation = 0.2
	SegmentConcentration    = 0.5
)

// HealthyInsight is reported when no rule fires
const HealthyInsight = "Data looks healthy across all key metrics"

// GenerateInsights turns the KPIs and distributions of a view into short remarks.
// An empty view has nothing to remark on and yields no insights.
func GenerateInsights(v *View, kpis models.KPIMetrics) []string {
	insights := make([]string, 0, 4)
	if v.Len() == 0 {
		return insights
	}

	if kpis.CancellationRate > HighCancellationRate {
		insights = append(insights, fmt.Sprintf(
			"High cancellation rate (%.1f%%) - consider implementing retention strategies", kpis.CancellationRate))
	}

	var resort, city float64
	for _, h := range HotelComparison(v) {
		switch h.Hotel {
		case models.HotelResort:
			resort = h.CancellationRate
		case models.HotelCity:
			city = h.CancellationRate
		}
	}
	if resort > 0 && city > 0 {
		if resort < city {
			insights = append(insights, fmt.Sprintf(
				"Resort hotels perform better with %.1f%% vs %.1f%% cancellation rate", resort, city))
		} else {
			insights = append(insights, fmt.Sprintf(
				"City hotels perform better with %.1f%% vs %.1f%% cancellation rate", city, resort))
		}
	}

	if kpis.AvgStay < ShortStayNights {
		insights = append(insights, "Short average stay - opportunity to promote longer packages")
	} else if kpis.AvgStay > LongStayNights {
		insights = append(insights, "Strong guest retention with long average stays")
	}

	if r := leadTimeCancellationCorrelation(v); r >= LeadTimeRiskCorrelation {
		insights = append(insights, fmt.Sprintf(
			"Cancellations rise with lead time (r = %.2f) - consider deposits for early bookings", r))
	}

	segments := MarketSegments(v)
	counts := make([]float64, len(segments))
	for i, s := range segments {
		counts[i] = float64(s.TotalBookings)
	}
	if len(segments) > 0 && stats.NormalizedEntropy(counts) < SegmentConcentration {
		top := segments[0]
		for _, s := range segments[1:] {
			if s.TotalBookings > top.TotalBookings {
				top = s
			}
		}
		insights = append(insights, fmt.Sprintf(
			"Bookings are concentrated in the %s segment (%.1f%%) - diversify distribution channels", top.MarketSegment, top.Share))
	}

	if len(insights) == 0 {
		insights = append(insights, HealthyInsight)
	}
	return insights
}

func leadTimeCancellationCorrelation(v *View) float64 {
	leadTimes := make([]float64, 0, v.Len())
	canceled := make([]float64, 0, v.Len())
	v.Each(func(b *models.Booking) {
		leadTimes = append(leadTimes, float64(b.LeadTime))
		if b.IsCanceled {
			canceled = append(canceled, 1)
		} else {
			canceled = append(canceled, 0)
		}
	})
	return stats.PearsonCorrelation(leadTimes, canceled)
}
