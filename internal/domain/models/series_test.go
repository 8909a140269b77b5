package models

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y, m, day int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: day}
}

func TestCrossKeepsIntersectionOnly(t *testing.T) {
	leg1 := NewRateSeries([]Point{{d(2024, 1, 2), 0.9}, {d(2024, 1, 3), 0.92}, {d(2024, 1, 4), 0.91}})
	leg2 := NewRateSeries([]Point{{d(2024, 1, 3), 7.8}, {d(2024, 1, 4), 7.9}, {d(2024, 1, 5), 8.0}})

	got := Cross(leg1, leg2)
	require.Len(t, got, 2)
	assert.Equal(t, d(2024, 1, 3), got[0].Date)
	assert.InDelta(t, 0.92*7.8, got[0].Rate, 1e-9)
	assert.InDelta(t, 0.91*7.9, got[1].Rate, 1e-9)
}

func TestCrossEmptyLeg(t *testing.T) {
	leg1 := NewRateSeries([]Point{{d(2024, 1, 2), 0.9}})
	assert.Empty(t, Cross(leg1, nil))
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: d(2024, 2, 27), End: d(2024, 3, 1)}
	assert.Equal(t, 4, r.Days())
	assert.True(t, r.Contains(d(2024, 2, 29)))
	assert.False(t, r.Contains(d(2024, 3, 2)))
	assert.Equal(t, "2024-02-27..2024-03-01", r.String())
}

func TestConversionUsesDecimal(t *testing.T) {
	res := NewConversionResult(Quote{From: "USD", To: "CNY", Rate: 7.1234}, 30000)
	assert.Equal(t, "213702.00", res.Converted.StringFixed(2))
}

func TestAmbiguityWrapsUnrecognized(t *testing.T) {
	err := &CurrencyError{Input: "克朗", Candidates: []string{"DKK", "SEK"}, Err: ErrAmbiguousCurrency}
	assert.True(t, errors.Is(err, ErrUnrecognizedCurrency))
	assert.Contains(t, err.Error(), "DKK, SEK")
}

func TestSpan(t *testing.T) {
	_, _, ok := RateSeries(nil).Span()
	assert.False(t, ok)

	s := NewRateSeries([]Point{{d(2024, 3, 1), 7.1}, {d(2024, 1, 2), 7.0}})
	first, last, ok := s.Span()
	require.True(t, ok)
	assert.Equal(t, d(2024, 1, 2), first)
	assert.Equal(t, d(2024, 3, 1), last)
}
