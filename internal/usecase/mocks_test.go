package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/mock"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
)

type mockRates struct {
	mock.Mock

	mu    sync.Mutex
	calls []string
}

func (m *mockRates) Latest(ctx context.Context, from, to string) (models.Quote, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(models.Quote), args.Error(1)
}

func (m *mockRates) Range(ctx context.Context, from, to string, r models.DateRange) (models.RateSeries, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("%s->%s@%d", from, to, r.Start.Year))
	m.mu.Unlock()

	args := m.Called(ctx, from, to, r)
	s, _ := args.Get(0).(models.RateSeries)
	return s, args.Error(1)
}

func (m *mockRates) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func startYear(y int) interface{} {
	return mock.MatchedBy(func(r models.DateRange) bool { return r.Start.Year == y })
}

// daily builds n consecutive daily points ending at end.
func daily(end civil.Date, n int, rate float64) models.RateSeries {
	pts := make([]models.Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, models.Point{Date: end.AddDays(-i), Rate: rate})
	}
	return models.NewRateSeries(pts)
}

var fixedNow = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

var today = civil.Date{Year: 2024, Month: time.June, Day: 3}
