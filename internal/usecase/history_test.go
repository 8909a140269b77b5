package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	"github.com/Stella-M-560/currency-bot-api/internal/services/normalize"
	"github.com/Stella-M-560/currency-bot-api/internal/services/stats"
	"github.com/Stella-M-560/currency-bot-api/internal/services/timerange"
)

var errDown = fmt.Errorf("%w: 503", models.ErrUpstreamUnavailable)

func newHistory(rates *mockRates) *History {
	cfg := HistoryConfig{
		Pivot:           "EUR",
		MinPoints:       100,
		ShrinkMinPoints: 50,
		ShrinkYears:     []int{5, 3, 1},
		EarliestDate:    civil.Date{Year: 1999, Month: time.January, Day: 4},
		Location:        time.UTC,
	}
	return NewHistory(cfg, normalize.New(), timerange.New(), stats.New(), rates, nil, nil).
		WithClock(func() time.Time { return fixedNow })
}

func TestSummarizeDirect(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2014)).Return(daily(today, 150, 7.1), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY", Range: "过去10年"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceDirect, res.Source)
	assert.Equal(t, "过去10年", res.Requested.Label)
	assert.Equal(t, 150, res.Points)
	assert.False(t, res.Report.Empty)
	rates.AssertExpectations(t)
	assert.Len(t, rates.recorded(), 1)
}

func TestSummarizeTriangulatesBeforeShrinking(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2014)).Return(models.RateSeries{}, nil).Once()
	rates.On("Range", mock.Anything, "USD", "EUR", startYear(2014)).Return(daily(today, 120, 0.9), nil).Once()
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2014)).Return(daily(today, 120, 8.0), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceTriangulated, res.Source)
	assert.Equal(t, "EUR", res.Pivot)
	assert.Equal(t, 120, res.Points)
	assert.InDelta(t, 7.2, res.Report.Overall.Avg, 1e-9)

	rates.AssertExpectations(t)
	rates.AssertNotCalled(t, "Range", mock.Anything, "USD", "CNY", startYear(2019))
	assert.Len(t, rates.recorded(), 3)
	assert.Equal(t, "USD->CNY@2014", rates.recorded()[0])
}

func TestTriangulationLegsRunTogether(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(2)
	overlapped := make(chan bool, 2)
	barrier := func(mock.Arguments) {
		arrived.Done()
		both := make(chan struct{})
		go func() {
			arrived.Wait()
			close(both)
		}()
		select {
		case <-both:
			overlapped <- true
		case <-time.After(time.Second):
			overlapped <- false
		}
	}

	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2014)).Return(models.RateSeries{}, nil).Once()
	rates.On("Range", mock.Anything, "USD", "EUR", startYear(2014)).Run(barrier).Return(daily(today, 120, 0.9), nil).Once()
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2014)).Run(barrier).Return(daily(today, 120, 8.0), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceTriangulated, res.Source)
	assert.True(t, <-overlapped, "first leg finished before the second started")
	assert.True(t, <-overlapped, "second leg finished before the first started")
}

func TestFailedLegCancelsItsSibling(t *testing.T) {
	siblingCancelled := make(chan bool, 1)

	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2014)).Return(models.RateSeries{}, nil).Once()
	rates.On("Range", mock.Anything, "USD", "EUR", startYear(2014)).Return(nil, errDown).Once()
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2014)).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		select {
		case <-ctx.Done():
			siblingCancelled <- true
		case <-time.After(time.Second):
			siblingCancelled <- false
		}
	}).Return(nil, context.Canceled).Once()
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2019)).Return(daily(today, 60, 7.0), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceReduced, res.Source)
	assert.True(t, <-siblingCancelled)
	rates.AssertExpectations(t)
}

func TestSummarizeShrinksAfterTriangulationFails(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2014)).Return(nil, errDown).Once()
	rates.On("Range", mock.Anything, "USD", "EUR", startYear(2014)).Return(daily(today, 120, 0.9), nil).Once()
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2014)).Return(nil, errDown).Once()
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(2019)).Return(daily(today, 60, 7.0), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceReduced, res.Source)
	assert.True(t, res.Reduced())
	assert.Equal(t, civil.Date{Year: 2019, Month: time.June, Day: 3}, res.Effective.Start)
	assert.Equal(t, "过去5年", res.Effective.Label)
	assert.Equal(t, civil.Date{Year: 2014, Month: time.June, Day: 3}, res.Requested.Start)

	calls := rates.recorded()
	require.Len(t, calls, 4)
	assert.Equal(t, "USD->CNY@2014", calls[0])
	assert.Equal(t, "USD->CNY@2019", calls[3])
}

func TestSummarizeSkipsTriangulationThroughPivotItself(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2014)).Return(daily(today, 10, 7.8), nil).Once()
	rates.On("Range", mock.Anything, "EUR", "CNY", startYear(2019)).Return(daily(today, 80, 7.8), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "欧元", To: "CNY"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceReduced, res.Source)
	assert.Len(t, rates.recorded(), 2)
}

func TestSummarizeAllUpstreamFailures(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errDown)

	_, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.False(t, errors.Is(err, models.ErrInsufficientData))
	// direct, two legs, then 5y, 3y, 1y
	assert.Len(t, rates.recorded(), 6)
}

func TestSummarizeInsufficientData(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(daily(today, 5, 7.0), nil)

	_, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestSummarizeShortRangeUsesLowerBar(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "JPY", startYear(2024)).Return(daily(today, 7, 155), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "JPY", Range: "过去10天"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceDirect, res.Source)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.May, Day: 24}, res.Requested.Start)
}

func TestSummarizeRejectsSamePairAndBadCurrency(t *testing.T) {
	rates := &mockRates{}
	h := newHistory(rates)

	_, err := h.Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "美元"})
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = h.Summarize(context.Background(), models.HistoryRequest{From: "比索", To: "USD"})
	assert.ErrorIs(t, err, models.ErrAmbiguousCurrency)

	assert.Empty(t, rates.recorded())
}

func TestSummarizeClampsToEarliestDate(t *testing.T) {
	rates := &mockRates{}
	rates.On("Range", mock.Anything, "USD", "CNY", startYear(1999)).Return(daily(today, 5000, 7.0), nil).Once()

	res, err := newHistory(rates).Summarize(context.Background(), models.HistoryRequest{From: "USD", To: "CNY", Range: "过去40年"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 1999, Month: time.January, Day: 4}, res.Effective.Start)
	assert.Equal(t, 1984, res.Requested.Start.Year)
}

func TestThreshold(t *testing.T) {
	long := models.DateRange{Start: civil.Date{Year: 2014, Month: 6, Day: 3}, End: today}
	assert.Equal(t, 100, Threshold(100, long))

	short := models.DateRange{Start: civil.Date{Year: 2024, Month: 5, Day: 24}, End: today}
	assert.Equal(t, 4, Threshold(100, short))

	oneDay := models.DateRange{Start: today, End: today}
	assert.Equal(t, 1, Threshold(50, oneDay))
}
