// Package budget implements the monthly budget aggregation engine: money
// and date utilities, category tree resolution, transaction classification
// and aggregation, and goal evaluation. Everything in this package is a
// pure function over plain records, with no I/O and no shared state.
package budget

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// Currency is the fixed display currency for formatted amounts. There is
// no locale auto-detection: the value comes from configuration.
type Currency string

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency Currency = "EUR"

// Format renders an amount of minor units (cents) as a currency string,
// e.g. 12345 -> "€123.45". Negative amounts render with a leading minus;
// zero renders without a sign.
func (c Currency) Format(minor int64) string {
	return money.New(minor, string(c)).Display()
}

// FormatDate renders a date as an ISO calendar date (YYYY-MM-DD). The
// input is treated as a UTC-normalized instant and truncated to the date.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthName returns the full English month name of the date's month.
func MonthName(t time.Time) string {
	return t.UTC().Month().String()
}

// YearMonth extracts the calendar year and month from a date.
func YearMonth(t time.Time) (int, time.Month) {
	u := t.UTC()
	return u.Year(), u.Month()
}

// SameYearMonth returns a predicate reporting whether a date falls in
// exactly the given year and month.
func SameYearMonth(year int, month time.Month) func(time.Time) bool {
	return func(t time.Time) bool {
		y, m := YearMonth(t)
		return y == year && m == month
	}
}

// MonthLabel renders a month as "June 2023".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// ParseMonthLabel parses a label produced by MonthLabel back into its
// year and month. Round-trips for any valid calendar date.
func ParseMonthLabel(label string) (int, time.Month, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month label %q", label)
	}
	t, err := time.Parse("January", parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month name %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", parts[1])
	}
	return year, t.Month(), nil
}
