package models

import (
	"math"
	"sort"
)

// Point is one daily observation.
type Point struct {
	Date CalendarDate
	Rate float64
}

// RateSeries is a date-ordered daily series. Callers must not mutate it after construction.
type RateSeries []Point

// NewRateSeries sorts points by date, drops non-positive, NaN and Inf rates
// and keeps the first entry when a date repeats.
func NewRateSeries(points []Point) RateSeries {
	out := make(RateSeries, 0, len(points))
	for _, p := range points {
		if !ValidRate(p.Rate) || !p.Date.IsValid() {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for i, p := range out {
		if i > 0 && p.Date == out[i-1].Date {
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

// ValidRate reports whether r is a usable exchange rate.
func ValidRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// Len returns the number of points.
func (s RateSeries) Len() int { return len(s) }

// Span returns the first and last dates. ok is false for an empty series.
func (s RateSeries) Span() (first, last CalendarDate, ok bool) {
	if len(s) == 0 {
		return CalendarDate{}, CalendarDate{}, false
	}
	return s[0].Date, s[len(s)-1].Date, true
}

// Cross multiplies two legs date by date, keeping only dates present in both.
func Cross(leg1, leg2 RateSeries) RateSeries {
	byDate := make(map[CalendarDate]float64, len(leg2))
	for _, p := range leg2 {
		byDate[p.Date] = p.Rate
	}
	out := make([]Point, 0, len(leg1))
	for _, p := range leg1 {
		r2, ok := byDate[p.Date]
		if !ok {
			continue
		}
		out = append(out, Point{Date: p.Date, Rate: p.Rate * r2})
	}
	return NewRateSeries(out)
}
