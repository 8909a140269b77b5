package util

import (
	"time"

	"cloud.google.com/go/civil"
)

// IsLeapYear reports whether year has a Feb 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month m of year.
func DaysIn(year int, m time.Month) int {
	switch m {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ClampDate builds a date, pulling day back to the last day of the month when it overflows.
// It never rolls into the following month.
func ClampDate(year int, m time.Month, day int) civil.Date {
	if last := DaysIn(year, m); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return civil.Date{Year: year, Month: m, Day: day}
}

// ParseDate parses an ISO8601 calendar date (YYYY-MM-DD). Returns (d, true) if it worked.
func ParseDate(s string) (civil.Date, bool) {
	if s == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

// ParseDateDefault parses a date or returns def if empty/invalid.
func ParseDateDefault(s string, def civil.Date) civil.Date {
	if d, ok := ParseDate(s); ok {
		return d
	}
	return def
}

// Today returns the current calendar date in loc (UTC when nil).
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}
