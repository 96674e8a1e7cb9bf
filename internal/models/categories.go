package models

import "encoding/json"

// Season is derived from the arrival month
type Season int

// Season constants, in display order
const (
	SeasonWinter Season = iota // Dec-Feb
	SeasonSpring               // Mar-May
	SeasonSummer               // Jun-Aug
	SeasonFall                 // Sep-Nov
)

// Seasons lists every season in display order
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

var seasonNames = [...]string{"Winter", "Spring", "Summer", "Fall"}

func (s Season) String() string {
	if s < 0 || int(s) >= len(seasonNames) {
		return "Unknown"
	}
	return seasonNames[s]
}

// MarshalJSON writes the season name
func (s Season) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// LeadTimeCategory buckets lead time in days
type LeadTimeCategory int

// LeadTimeCategory constants, in bucket order
const (
	LeadTimeSameDay    LeadTimeCategory = iota // 0
	LeadTimeWeek                               // 1-7
	LeadTimeMonth                              // 8-30
	LeadTimeQuarter                            // 31-90
	LeadTimeHalfYear                           // 91-180
	LeadTimeLongRange                          // 181+
)

// LeadTimeCategories lists every lead-time bucket in order
var LeadTimeCategories = []LeadTimeCategory{
	LeadTimeSameDay, LeadTimeWeek, LeadTimeMonth,
	LeadTimeQuarter, LeadTimeHalfYear, LeadTimeLongRange,
}

var leadTimeLabels = [...]string{"Same Day", "1-7 days", "1-4 weeks", "1-3 months", "3-6 months", "6+ months"}

func (c LeadTimeCategory) String() string {
	if c < 0 || int(c) >= len(leadTimeLabels) {
		return "Unknown"
	}
	return leadTimeLabels[c]
}

// MarshalJSON writes the bucket label
func (c LeadTimeCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// StayDurationCategory buckets total nights
type StayDurationCategory int

// StayDurationCategory constants, in bucket order
const (
	StayOneNight   StayDurationCategory = iota // <= 1
	StayShort                                  // 2-3
	StayWeek                                   // 4-7
	StayTwoWeeks                               // 8-14
	StayExtended                               // 15+
)

// StayDurationCategories lists every stay bucket in order
var StayDurationCategories = []StayDurationCategory{
	StayOneNight, StayShort, StayWeek, StayTwoWeeks, StayExtended,
}

var stayLabels = [...]string{"1 night", "2-3 nights", "4-7 nights", "1-2 weeks", "2+ weeks"}

func (c StayDurationCategory) String() string {
	if c < 0 || int(c) >= len(stayLabels) {
		return "Unknown"
	}
	return stayLabels[c]
}

// MarshalJSON writes the bucket label
func (c StayDurationCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
