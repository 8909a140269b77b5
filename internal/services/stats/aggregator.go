package stats

import (
	"sort"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
)

// Aggregator folds daily rates into per-year and overall statistics.
type Aggregator struct{}

// New returns an Aggregator.
func New() *Aggregator { return &Aggregator{} }

// Aggregate reduces series to a Report. An empty series yields Report{Empty: true}.
func (a *Aggregator) Aggregate(series models.RateSeries) models.Report {
	byYear := make(map[int]*models.YearlyStat)
	var total models.YearlyStat
	var first, last models.Point
	count := 0

	for _, p := range series {
		if !models.ValidRate(p.Rate) {
			continue
		}
		ys, ok := byYear[p.Date.Year]
		if !ok {
			ys = &models.YearlyStat{Year: p.Date.Year}
			byYear[p.Date.Year] = ys
		}
		ys.Add(p.Rate)
		total.Add(p.Rate)

		if count == 0 {
			first = p
		}
		last = p
		count++
	}

	if count == 0 {
		return models.Report{Empty: true}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	report := models.Report{Years: make([]models.YearSummary, 0, len(years))}
	overall := models.Overall{
		Min:        total.Min,
		Max:        total.Max,
		Avg:        total.Avg(),
		Volatility: total.Volatility(),
		First:      first,
		Last:       last,
		ChangePct:  ChangePct(first.Rate, last.Rate),
		Count:      count,
	}

	for _, y := range years {
		ys := byYear[y]
		report.Years = append(report.Years, models.YearSummary{
			Year:       y,
			Min:        ys.Min,
			Max:        ys.Max,
			Avg:        ys.Avg(),
			Volatility: ys.Volatility(),
			Count:      ys.Count,
		})
		// ascending scan, so the first year to hit the extreme wins ties
		if overall.MinYear == 0 && ys.Min == total.Min {
			overall.MinYear = y
		}
		if overall.MaxYear == 0 && ys.Max == total.Max {
			overall.MaxYear = y
		}
	}

	report.Overall = overall
	return report
}

// ChangePct is the percentage move from first to last.
func ChangePct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
