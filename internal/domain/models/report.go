package models

// YearlyStat accumulates one calendar year of rates.
type YearlyStat struct {
	Year  int
	Min   float64
	Max   float64
	Sum   float64
	Count int
}

// Add folds one rate into the stat.
func (s *YearlyStat) Add(rate float64) {
	if s.Count == 0 || rate < s.Min {
		s.Min = rate
	}
	if s.Count == 0 || rate > s.Max {
		s.Max = rate
	}
	s.Sum += rate
	s.Count++
}

// Avg is Sum/Count, or 0 when nothing was folded.
func (s YearlyStat) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Volatility is (max-min)/min as a percentage.
func (s YearlyStat) Volatility() float64 {
	return Volatility(s.Min, s.Max)
}

// Volatility returns (max-min)/min*100, or 0 when min is not positive.
func Volatility(lo, hi float64) float64 {
	if lo <= 0 {
		return 0
	}
	return (hi - lo) / lo * 100
}

// YearSummary is a finished YearlyStat with derived fields.
type YearSummary struct {
	Year       int
	Min        float64
	Max        float64
	Avg        float64
	Volatility float64
	Count      int
}

// Overall summarizes the whole series.
type Overall struct {
	Min        float64
	Max        float64
	Avg        float64
	Volatility float64
	MinYear    int
	MaxYear    int
	First      Point
	Last       Point
	ChangePct  float64
	Count      int
}

// Report is the aggregated view of a RateSeries. Years are ascending.
type Report struct {
	Years   []YearSummary
	Overall Overall
	Empty   bool
}
