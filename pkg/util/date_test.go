package util

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{2000: true, 1900: false, 2024: true, 2023: false, 2100: false}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Fatalf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Fatalf("unexpected days %d", got)
	}
	if got := DaysIn(2023, time.February); got != 28 {
		t.Fatalf("unexpected days %d", got)
	}
	if got := DaysIn(2023, time.November); got != 30 {
		t.Fatalf("unexpected days %d", got)
	}
	if got := DaysIn(2023, time.December); got != 31 {
		t.Fatalf("unexpected days %d", got)
	}
}

func TestClampDate(t *testing.T) {
	got := ClampDate(2023, time.February, 29)
	want := civil.Date{Year: 2023, Month: time.February, Day: 28}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	got = ClampDate(2024, time.April, 31)
	if got.Day != 30 || got.Month != time.April {
		t.Fatalf("unexpected clamp %v", got)
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-02-29")
	if !ok {
		t.Fatalf("expected ok")
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected date %v", d)
	}
	if _, ok := ParseDate("2023-02-29"); ok {
		t.Fatalf("expected invalid date to fail")
	}
}

func TestParseDateDefault(t *testing.T) {
	def := civil.Date{Year: 1999, Month: time.January, Day: 4}
	if got := ParseDateDefault("", def); got != def {
		t.Fatalf("expected default")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("8081", 1); got != 8081 {
		t.Fatalf("unexpected %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default")
	}
}
