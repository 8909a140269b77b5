package models

import "cloud.google.com/go/civil"

// CalendarDate is a date without time of day. It prints as YYYY-MM-DD.
type CalendarDate = civil.Date

// DateRange is an inclusive calendar range. Start never falls after End.
type DateRange struct {
	Start CalendarDate
	End   CalendarDate
	Label string
}

// Days returns the number of calendar days covered, both ends included.
func (r DateRange) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

// Contains reports whether d lies within the range.
func (r DateRange) Contains(d CalendarDate) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
