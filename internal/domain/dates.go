package domain

import "time"

// Days from 0001-01-01 to the Unix epoch in the proleptic Gregorian calendar
const unixEpochOrdinal = 719163

// DateOnly truncates a time to midnight UTC. Valuation dates are pure dates;
// all ordinal and storage comparisons go through this.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayOrdinal returns the day count since 0001-01-01 (day 1). Used as the
// monotonic phase input of the drift and gauge oscillations.
func DayOrdinal(t time.Time) int {
	return int(DateOnly(t).Unix()/86400) + unixEpochOrdinal
}

// ValuationDates returns `days` consecutive dates ending at anchor, ascending
func ValuationDates(anchor time.Time, days int) []time.Time {
	dates := make([]time.Time, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		dates = append(dates, DateOnly(anchor).AddDate(0, 0, -offset))
	}
	return dates
}
