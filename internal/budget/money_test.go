package budget_test

import (
	"testing"
	"time"

	"github.com/boddenberg/budgeteer-api-go/internal/budget"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFormatAmount(t *testing.T) {
	cur := budget.DefaultCurrency

	cases := []struct {
		minor int64
		want  string
	}{
		{0, "€0.00"},
		{12345, "€123.45"},
		{-5000, "-€50.00"},
		{-1, "-€0.01"},
		{100, "€1.00"},
	}
	for _, tc := range cases {
		if got := cur.Format(tc.minor); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	in := time.Date(2023, 6, 15, 22, 45, 0, 0, time.UTC)
	if got := budget.FormatDate(in); got != "2023-06-15" {
		t.Errorf("FormatDate = %q, want 2023-06-15", got)
	}
}

func TestMonthName(t *testing.T) {
	if got := budget.MonthName(date("2023-06-15")); got != "June" {
		t.Errorf("MonthName = %q, want June", got)
	}
}

func TestSameYearMonth(t *testing.T) {
	pred := budget.SameYearMonth(2023, time.June)

	if !pred(date("2023-06-15")) {
		t.Error("2023-06-15 should match (2023, June)")
	}
	if pred(date("2022-06-15")) {
		t.Error("2022-06-15 should not match (2023, June)")
	}
	if pred(date("2023-07-15")) {
		t.Error("2023-07-15 should not match (2023, June)")
	}
}

func TestMonthLabelRoundTrip(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		label := budget.MonthLabel(2023, month)
		year, gotMonth, err := budget.ParseMonthLabel(label)
		if err != nil {
			t.Fatalf("ParseMonthLabel(%q): %v", label, err)
		}
		if year != 2023 || gotMonth != month {
			t.Errorf("round trip of %q = (%d, %s), want (2023, %s)", label, year, gotMonth, month)
		}
	}
}

func TestParseMonthLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "June", "Juneteenth 2023", "June twenty"} {
		if _, _, err := budget.ParseMonthLabel(label); err == nil {
			t.Errorf("ParseMonthLabel(%q): expected error, got nil", label)
		}
	}
}
