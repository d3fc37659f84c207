package budget_test

import (
	"testing"
	"time"

	"github.com/boddenberg/budgeteer-api-go/internal/budget"
	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

var testPayees = []domain.Payee{
	{ID: "p1", Name: "Shop"},
	{ID: "p2", Name: "Transfer to Savings"},
	{ID: "p3", Name: "transfer lowercase"},
}

func TestIsTransfer(t *testing.T) {
	cases := []struct {
		payeeID string
		want    bool
	}{
		{"p1", false},
		{"p2", true},
		{"p3", false}, // prefix match is case-sensitive
		{"missing", false},
	}
	for _, tc := range cases {
		tx := domain.Transaction{PayeeID: tc.payeeID}
		if got := budget.IsTransfer(tx, testPayees); got != tc.want {
			t.Errorf("IsTransfer(payee %s) = %v, want %v", tc.payeeID, got, tc.want)
		}
	}
}

func TestFilterToTargetMonth(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", Date: date("2023-06-05"), Amount: -2000, PayeeID: "p1"},
		{ID: "t2", Date: date("2023-05-28"), Amount: -1500, PayeeID: "p1"},
		{ID: "t3", Date: date("2023-06-10"), Amount: 300000, PayeeID: "p1"},
		// Transfer after everything else: must not shift the target month
		// forward, and must not appear in the filtered set.
		{ID: "t4", Date: date("2023-07-01"), Amount: 500000, PayeeID: "p2"},
	}

	year, month, filtered := budget.FilterToTargetMonth(txs, testPayees)
	if year != 2023 || month != time.June {
		t.Fatalf("target month = %d-%s, want 2023-June", year, month)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(filtered))
	}
	// Descending by date for display.
	if filtered[0].ID != "t3" || filtered[1].ID != "t1" {
		t.Errorf("unexpected order: %s, %s", filtered[0].ID, filtered[1].ID)
	}
}

func TestFilterToTargetMonthIdempotent(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", Date: date("2023-06-05"), Amount: -2000, PayeeID: "p1"},
		{ID: "t2", Date: date("2023-04-01"), Amount: -100, PayeeID: "p1"},
		{ID: "t3", Date: date("2023-06-20"), Amount: 900, PayeeID: "p1"},
	}

	year, month, filtered := budget.FilterToTargetMonth(txs, testPayees)
	year2, month2, filtered2 := budget.FilterToTargetMonth(filtered, testPayees)

	if year != year2 || month != month2 {
		t.Errorf("re-deriving the month changed it: %d-%s vs %d-%s", year, month, year2, month2)
	}
	if len(filtered) != len(filtered2) {
		t.Errorf("re-filtering changed the set size: %d vs %d", len(filtered), len(filtered2))
	}
}

func TestFilterToTargetMonthEmptyFallsBackToNow(t *testing.T) {
	// Only a transfer remains: target resolution must fall back to the
	// current real-world month with an empty set.
	txs := []domain.Transaction{
		{ID: "t1", Date: date("2023-06-10"), Amount: 500000, PayeeID: "p2"},
	}

	year, month, filtered := budget.FilterToTargetMonth(txs, testPayees)
	wantYear, wantMonth := budget.YearMonth(time.Now())
	if year != wantYear || month != wantMonth {
		t.Errorf("fallback month = %d-%s, want %d-%s", year, month, wantYear, wantMonth)
	}
	if len(filtered) != 0 {
		t.Errorf("expected empty set, got %d transactions", len(filtered))
	}
}

func TestFilterToTargetMonthExcludesDeleted(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", Date: date("2023-06-05"), Amount: -2000, PayeeID: "p1"},
		{ID: "t2", Date: date("2023-06-06"), Amount: -999, PayeeID: "p1", Deleted: true},
	}

	_, _, filtered := budget.FilterToTargetMonth(txs, testPayees)
	if len(filtered) != 1 || filtered[0].ID != "t1" {
		t.Errorf("deleted transaction should be excluded, got %+v", filtered)
	}
}

func TestIncomeSpendingLinearity(t *testing.T) {
	txs := []domain.Transaction{
		{Amount: 1000},
		{Amount: -250},
		{Amount: 0},
		{Amount: -999},
		{Amount: 123456},
	}

	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}

	income := budget.TotalIncome(txs)
	spending := budget.TotalSpending(txs)
	if income != 124456 {
		t.Errorf("income = %d, want 124456", income)
	}
	if spending != -1249 {
		t.Errorf("spending = %d, want -1249", spending)
	}
	if income+spending != sum {
		t.Errorf("income+spending = %d, want %d", income+spending, sum)
	}
}

func TestGroupAndTotalByCategory(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "t1", CategoryID: "c2", Amount: -2000},
		{ID: "t2", CategoryID: "c2", Amount: -500},
		{ID: "t3", CategoryID: "", Amount: 10000},
	}

	grouped := budget.GroupByCategory(txs)
	if len(grouped["c2"]) != 2 {
		t.Errorf("expected 2 transactions in c2, got %d", len(grouped["c2"]))
	}
	if len(grouped[""]) != 1 {
		t.Errorf("expected 1 uncategorized transaction, got %d", len(grouped[""]))
	}

	totals := budget.TotalByCategory(grouped)
	if totals["c2"] != -2500 {
		t.Errorf("c2 total = %d, want -2500", totals["c2"])
	}
	if totals[""] != 10000 {
		t.Errorf("uncategorized total = %d, want 10000", totals[""])
	}
}
