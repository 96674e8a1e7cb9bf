package analysis

import (
	"fmt"
	"sort"

	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/stats"
)

// TopCountryLimit is the number of countries kept by the geographic chart
const TopCountryLimit = 15

// MonthlyTrends groups by (arrival year, month) in chronological order.
// Rows without a valid arrival date are skipped.
func MonthlyTrends(v *View) []models.MonthlyTrend {
	groups := make(map[int]*tally)
	v.Each(func(b *models.Booking) {
		if !b.ArrivalDate.Valid {
			return
		}
		key := b.ArrivalYear*12 + int(b.ArrivalMonth) - 1
		if groups[key] == nil {
			groups[key] = &tally{}
		}
		groups[key].add(b)
	})

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	trends := make([]models.MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		year, month := k/12, models.Month(k%12+1)
		t := groups[k]
		trends = append(trends, models.MonthlyTrend{
			Year:             year,
			Month:            month,
			Label:            fmt.Sprintf("%s %d", month, year),
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
		})
	}
	return trends
}

// HotelComparison groups by hotel category, alphabetically
func HotelComparison(v *View) []models.HotelStats {
	groups, keys := groupByString(v, func(b *models.Booking) string { return string(b.Hotel) })

	result := make([]models.HotelStats, 0, len(keys))
	for _, k := range keys {
		t := groups[k]
		result = append(result, models.HotelStats{
			Hotel:            models.Hotel(k),
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
			AvgStay:          t.mean(t.nights),
			AvgADR:           t.mean(t.adr),
			TotalRevenue:     t.revenue,
		})
	}
	return result
}

// TopCountries returns the limit countries with most bookings, count descending.
// Ties keep country-code order. Rows with an unknown country are skipped.
func TopCountries(v *View, limit int) []models.CountryStats {
	groups, keys := groupByString(v, func(b *models.Booking) string { return b.Country })

	result := make([]models.CountryStats, 0, len(keys))
	for _, k := range keys {
		t := groups[k]
		result = append(result, models.CountryStats{
			Country:          k,
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
			TotalRevenue:     t.revenue,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalBookings > result[j].TotalBookings
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// MarketSegments groups by market segment, alphabetically
func MarketSegments(v *View) []models.SegmentStats {
	groups, keys := groupByString(v, func(b *models.Booking) string { return b.MarketSegment })

	total := 0
	for _, t := range groups {
		total += t.count
	}

	result := make([]models.SegmentStats, 0, len(keys))
	for _, k := range keys {
		t := groups[k]
		result = append(result, models.SegmentStats{
			MarketSegment:    k,
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
			AvgADR:           t.mean(t.adr),
			TotalRevenue:     t.revenue,
			Share:            stats.Percent(t.count, total),
		})
	}
	return result
}

// SeasonalBreakdown groups by (season, hotel) in season order, then hotel order
func SeasonalBreakdown(v *View) []models.SeasonalStats {
	type cell struct {
		season models.Season
		hotel  models.Hotel
	}
	groups := make(map[cell]*tally)
	v.Each(func(b *models.Booking) {
		key := cell{season: b.Season, hotel: b.Hotel}
		if groups[key] == nil {
			groups[key] = &tally{}
		}
		groups[key].add(b)
	})

	keys := make([]cell, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].season != keys[j].season {
			return keys[i].season < keys[j].season
		}
		return keys[i].hotel < keys[j].hotel
	})

	result := make([]models.SeasonalStats, 0, len(keys))
	for _, k := range keys {
		t := groups[k]
		result = append(result, models.SeasonalStats{
			Season:           k.season,
			Hotel:            k.hotel,
			TotalBookings:    t.count,
			CancellationRate: t.cancellationRate(),
			AvgADR:           t.mean(t.adr),
		})
	}
	return result
}

// groupByString tallies rows by a string key and returns the keys sorted.
// Rows whose key is empty are skipped.
func groupByString(v *View, key func(b *models.Booking) string) (map[string]*tally, []string) {
	groups := make(map[string]*tally)
	v.Each(func(b *models.Booking) {
		k := key(b)
		if k == "" {
			return
		}
		if groups[k] == nil {
			groups[k] = &tally{}
		}
		groups[k].add(b)
	})

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys
}
