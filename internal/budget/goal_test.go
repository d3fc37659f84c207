package budget_test

import (
	"testing"

	"github.com/boddenberg/budgeteer-api-go/internal/budget"
	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

func TestDescribeGoalSameMonth(t *testing.T) {
	g := domain.Goal{
		Type:       domain.GoalMonthlyBudget,
		Target:     10000,
		StartMonth: date("2022-03-01"),
		EndMonth:   date("2022-03-01"),
	}

	got := budget.DescribeGoal(budget.DefaultCurrency, g, 3000, 8000, -5000)
	want := "[MonthlyBudget] €30.00/€100.00 by end of the month: €80.00 this month, activity -€50.00"
	if got != want {
		t.Errorf("descriptor = %q, want %q", got, want)
	}
}

func TestDescribeGoalWithSinceClause(t *testing.T) {
	g := domain.Goal{
		Type:       domain.GoalBalanceByDate,
		Target:     50000,
		StartMonth: date("2023-01-01"),
		EndMonth:   date("2023-06-30"),
	}

	got := budget.DescribeGoal(budget.DefaultCurrency, g, 20000, 5000, -1000)
	want := "[BalanceByDate] €200.00/€500.00 by end of June (since January): €50.00 this month, activity -€10.00"
	if got != want {
		t.Errorf("descriptor = %q, want %q", got, want)
	}
}

// Start and end in the same-named month of different years still read
// "by end of the month": the comparison is by month name.
func TestDescribeGoalSameMonthNameDifferentYears(t *testing.T) {
	g := domain.Goal{
		Type:       domain.GoalMinimumBalance,
		Target:     1000,
		StartMonth: date("2022-03-01"),
		EndMonth:   date("2023-03-01"),
	}

	got := budget.DescribeGoal(budget.DefaultCurrency, g, 0, 0, 0)
	want := "[MinimumBalance] €0.00/€10.00 by end of the month: €0.00 this month, activity €0.00"
	if got != want {
		t.Errorf("descriptor = %q, want %q", got, want)
	}
}
