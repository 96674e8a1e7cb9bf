package dataset

import (
	"time"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// ComposeArrivalDate builds the arrival date from its parts.
// Combinations that are not a real calendar day (30 February, day 0) are absent.
func ComposeArrivalDate(year int, month models.Month, day int) models.NullDate {
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return models.NullDate{}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject anything it moved
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return models.NullDate{}
	}
	return models.NullDate{Time: t, Valid: true}
}

// SeasonForMonth maps every month onto its meteorological season
func SeasonForMonth(month models.Month) models.Season {
	switch time.Month(month) {
	case time.December, time.January, time.February:
		return models.SeasonWinter
	case time.March, time.April, time.May:
		return models.SeasonSpring
	case time.June, time.July, time.August:
		return models.SeasonSummer
	default:
		return models.SeasonFall
	}
}

// CategorizeLeadTime buckets a non-negative lead time using right-inclusive bounds 0, 7, 30, 90, 180
func CategorizeLeadTime(days int) models.LeadTimeCategory {
	switch {
	case days <= 0:
		return models.LeadTimeSameDay
	case days <= 7:
		return models.LeadTimeWeek
	case days <= 30:
		return models.LeadTimeMonth
	case days <= 90:
		return models.LeadTimeQuarter
	case days <= 180:
		return models.LeadTimeHalfYear
	default:
		return models.LeadTimeLongRange
	}
}

// CategorizeStayDuration buckets total nights using right-inclusive bounds 1, 3, 7, 14
func CategorizeStayDuration(nights int) models.StayDurationCategory {
	switch {
	case nights <= 1:
		return models.StayOneNight
	case nights <= 3:
		return models.StayShort
	case nights <= 7:
		return models.StayWeek
	case nights <= 14:
		return models.StayTwoWeeks
	default:
		return models.StayExtended
	}
}

// Derive fills the derived attributes of b from its raw columns only
func Derive(b *models.Booking) {
	b.TotalNights = b.StaysInWeekendNights + b.StaysInWeekNights
	b.TotalGuests = b.Adults + b.Children + b.Babies
	b.ArrivalDate = ComposeArrivalDate(b.ArrivalYear, b.ArrivalMonth, b.ArrivalDayOfMonth)
	b.Season = SeasonForMonth(b.ArrivalMonth)
	b.LeadTimeCategory = CategorizeLeadTime(b.LeadTime)
	b.StayDurationCategory = CategorizeStayDuration(b.TotalNights)
	b.TotalRevenue = float64(b.TotalNights) * b.ADR
}
