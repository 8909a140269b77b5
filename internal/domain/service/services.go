package service

import "github.com/Stella-M-560/currency-bot-api/internal/domain/models"

// CurrencyNormalizer maps free text to an ISO currency code.
type CurrencyNormalizer interface {
	NormalizeCurrency(raw string) (string, error)
	ParseAmount(raw string) (float64, error)
}

// RangeResolver turns a relative-time phrase into a concrete date range.
type RangeResolver interface {
	Resolve(phrase string, now models.CalendarDate) models.DateRange
	SpanYears(n int, end models.CalendarDate) models.DateRange
}

// Aggregator folds a rate series into a report.
type Aggregator interface {
	Aggregate(series models.RateSeries) models.Report
}
