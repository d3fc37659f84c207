package budget

import (
	"fmt"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// DescribeGoal renders a goal's progress against the category's current
// balance, budgeted and activity for the active month:
//
//	[MonthlyBudget] €30.00/€100.00 by end of the month: €80.00 this month, activity -€50.00
//
// When the goal's start and end months carry different names the deadline
// reads "by end of <end month> (since <start month>)". The three goal
// types share this rendering; how target/start/end are chosen per type is
// the caller's concern.
func DescribeGoal(cur Currency, g domain.Goal, balance, budgeted, activity int64) string {
	startName := MonthName(g.StartMonth)
	endName := MonthName(g.EndMonth)

	deadline := "by end of the month"
	if startName != endName {
		deadline = fmt.Sprintf("by end of %s (since %s)", endName, startName)
	}

	return fmt.Sprintf("[%s] %s/%s %s: %s this month, activity %s",
		g.Type,
		cur.Format(balance),
		cur.Format(g.Target),
		deadline,
		cur.Format(budgeted),
		cur.Format(activity),
	)
}
