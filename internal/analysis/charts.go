package analysis

import (
	"sort"
)

// Chart names
const (
	ChartMonthlyTrends   = "monthly_trends"
	ChartHotelComparison = "hotel_comparison"
	ChartLeadTime        = "lead_time"
	ChartCountries       = "countries"
	ChartMarketSegments  = "market_segments"
	ChartSeasonal        = "seasonal"
	ChartStayDuration    = "stay_duration"
	ChartADRDistribution = "adr_distribution"
)

// Chart computes one grouped aggregate of a view.
// Charts are independent read-only reducers; the same view always yields the same rows in the same order.
type Chart func(v *View) interface{}

// ChartRegistry maps chart names to their aggregates
var ChartRegistry = make(map[string]Chart)

// RegisterChart registers a chart under a name
func RegisterChart(name string, chart Chart) {
	ChartRegistry[name] = chart
}

// GetChart retrieves a chart by name
func GetChart(name string) (Chart, bool) {
	chart, ok := ChartRegistry[name]
	return chart, ok
}

// ChartNames returns the registered chart names in sorted order
func ChartNames() []string {
	names := make([]string, 0, len(ChartRegistry))
	for name := range ChartRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComputeCharts runs every registered chart over the view
func ComputeCharts(v *View) map[string]interface{} {
	charts := make(map[string]interface{}, len(ChartRegistry))
	for name, chart := range ChartRegistry {
		charts[name] = chart(v)
	}
	return charts
}

func init() {
	RegisterChart(ChartMonthlyTrends, func(v *View) interface{} { return MonthlyTrends(v) })
	RegisterChart(ChartHotelComparison, func(v *View) interface{} { return HotelComparison(v) })
	RegisterChart(ChartLeadTime, func(v *View) interface{} { return LeadTimeBreakdown(v) })
	RegisterChart(ChartCountries, func(v *View) interface{} { return TopCountries(v, TopCountryLimit) })
	RegisterChart(ChartMarketSegments, func(v *View) interface{} { return MarketSegments(v) })
	RegisterChart(ChartSeasonal, func(v *View) interface{} { return SeasonalBreakdown(v) })
	RegisterChart(ChartStayDuration, func(v *View) interface{} { return StayDurationBreakdown(v) })
	RegisterChart(ChartADRDistribution, func(v *View) interface{} { return ADRDistributionByHotel(v) })
}
