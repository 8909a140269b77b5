package timerange

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestResolveLeapDayYears(t *testing.T) {
	r := New()
	got := r.Resolve("过去1年", date(2024, 2, 29))

	assert.Equal(t, date(2023, 2, 28), got.Start)
	assert.Equal(t, date(2024, 2, 29), got.End)
	assert.Equal(t, "过去1年", got.Label)
}

func TestResolveLeapDayToLeapYear(t *testing.T) {
	got := New().Resolve("过去4年", date(2024, 2, 29))
	assert.Equal(t, date(2020, 2, 29), got.Start)
}

func TestResolveMonthClampsToMonthEnd(t *testing.T) {
	r := New()

	got := r.Resolve("过去1个月", date(2024, 1, 31))
	assert.Equal(t, date(2023, 12, 31), got.Start)
	assert.Equal(t, "过去1个月", got.Label)

	got = r.Resolve("最近1月", date(2024, 3, 31))
	assert.Equal(t, date(2024, 2, 29), got.Start)

	got = r.Resolve("过去3个月", date(2023, 5, 31))
	assert.Equal(t, date(2023, 2, 28), got.Start)
}

func TestResolveMonthsBorrowYears(t *testing.T) {
	got := New().Resolve("过去14个月", date(2024, 2, 15))
	assert.Equal(t, date(2022, 12, 15), got.Start)

	got = New().Resolve("过去24个月", date(2024, 1, 10))
	assert.Equal(t, date(2022, 1, 10), got.Start)
}

func TestResolveDays(t *testing.T) {
	got := New().Resolve("过去10天", date(2024, 3, 5))
	assert.Equal(t, date(2024, 2, 24), got.Start)
	assert.Equal(t, "过去10天", got.Label)
}

func TestResolveDefaultsToTenYears(t *testing.T) {
	for _, phrase := range []string{"", "随便", "过去0年", "很久以前"} {
		got := New().Resolve(phrase, date(2024, 2, 29))
		assert.Equal(t, date(2014, 2, 28), got.Start, phrase)
		assert.Equal(t, "过去10年", got.Label, phrase)
	}
}

func TestResolveRejectsNonIntegerCounts(t *testing.T) {
	for _, phrase := range []string{"过去1.5年", "过去2.5个月", "过去-3年", "最近0.5天", "过去1,5年"} {
		got := New().Resolve(phrase, date(2024, 6, 1))
		assert.Equal(t, date(2014, 6, 1), got.Start, phrase)
		assert.Equal(t, "过去10年", got.Label, phrase)
	}
}

func TestResolveAcceptsSpacedAndBareCounts(t *testing.T) {
	got := New().Resolve("过去 3 年", date(2024, 6, 1))
	assert.Equal(t, date(2021, 6, 1), got.Start)
	assert.Equal(t, "过去3年", got.Label)

	got = New().Resolve("6个月", date(2024, 6, 1))
	assert.Equal(t, date(2023, 12, 1), got.Start)
}

func TestResolveStartNeverAfterEnd(t *testing.T) {
	for _, phrase := range []string{"过去5年", "过去3个月", "过去1天", "过去100年"} {
		got := New().Resolve(phrase, date(2024, 6, 1))
		assert.False(t, got.Start.After(got.End), phrase)
	}
}

func TestSpanYears(t *testing.T) {
	got := New().SpanYears(3, date(2024, 2, 29))
	assert.Equal(t, date(2021, 2, 28), got.Start)
	assert.Equal(t, "过去3年", got.Label)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 1, floorDiv(12, 12))
	assert.Equal(t, 0, floorDiv(11, 12))
	assert.Equal(t, -1, floorDiv(-1, 12))
}
