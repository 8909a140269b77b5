package timerange

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	"github.com/Stella-M-560/currency-bot-api/pkg/util"
)

const (
	unitYear  = "年"
	unitMonth = "个月"
	unitDay   = "天"

	defaultN = 10
)

// The count must be a whole number; a digit run after a point, comma or sign is not one.
var phrasePattern = regexp.MustCompile(`(?:^|[^\d.,\-])(\d+)\s*(年|个月|月|天)`)

// Resolver turns phrases like "过去5年" into calendar ranges ending today.
type Resolver struct{}

// New returns a Resolver.
func New() *Resolver { return &Resolver{} }

// Resolve parses phrase relative to now. Unparseable phrases fall back to ten years.
func (r *Resolver) Resolve(phrase string, now models.CalendarDate) models.DateRange {
	n, unit := parsePhrase(phrase)

	var start models.CalendarDate
	switch unit {
	case unitMonth:
		start = MonthsBefore(now, n)
	case unitDay:
		start = now.AddDays(-n)
	default:
		start = YearsBefore(now, n)
	}

	if start.After(now) {
		start = YearsBefore(now, 1)
	}
	return models.DateRange{Start: start, End: now, Label: label(n, unit)}
}

// SpanYears returns the n-year range ending at end.
func (r *Resolver) SpanYears(n int, end models.CalendarDate) models.DateRange {
	return models.DateRange{Start: YearsBefore(end, n), End: end, Label: label(n, unitYear)}
}

func parsePhrase(phrase string) (int, string) {
	m := phrasePattern.FindStringSubmatch(phrase)
	if m == nil {
		return defaultN, unitYear
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return defaultN, unitYear
	}
	unit := m[2]
	if unit == "月" {
		unit = unitMonth
	}
	return n, unit
}

func label(n int, unit string) string {
	return fmt.Sprintf("过去%d%s", n, unit)
}

// YearsBefore moves d back n years; Feb 29 lands on Feb 28 in a common year.
func YearsBefore(d models.CalendarDate, n int) models.CalendarDate {
	return util.ClampDate(d.Year-n, d.Month, d.Day)
}

// MonthsBefore moves d back n months, borrowing years, and clamps to the target month's last day.
func MonthsBefore(d models.CalendarDate, n int) models.CalendarDate {
	total := d.Year*12 + int(d.Month-1) - n
	year := floorDiv(total, 12)
	month := total - year*12 + 1
	return util.ClampDate(year, time.Month(month), d.Day)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
