package repository

import (
	"context"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
)

// RateSource answers latest and historical rate queries.
type RateSource interface {
	Latest(ctx context.Context, from, to string) (models.Quote, error)
	Range(ctx context.Context, from, to string, r models.DateRange) (models.RateSeries, error)
}

type Metrics interface {
	RecordUpstream(endpoint, outcome string, seconds float64)
	RecordCacheLookup(result string)
	RecordFallback(stage, outcome string)
	RecordError(kind string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordUpstream(string, string, float64) {}
func (NopMetrics) RecordCacheLookup(string)               {}
func (NopMetrics) RecordFallback(string, string)          {}
func (NopMetrics) RecordError(string)                     {}
