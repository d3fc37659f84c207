package budget

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// TransferPrefix marks a payee as an internal-transfer counterparty. This
// is a case-sensitive naming convention carried over from the import
// format; keep the check behind IsTransfer so it can be swapped later
// without touching the aggregation code.
const TransferPrefix = "Transfer"

// IsTransfer reports whether the transaction's payee name starts with the
// transfer prefix. A transaction whose payee does not resolve is never
// classified as a transfer.
func IsTransfer(tx domain.Transaction, payees []domain.Payee) bool {
	p, ok := Find(tx.PayeeID, payees)
	return ok && strings.HasPrefix(p.Name, TransferPrefix)
}

// FilterToTargetMonth resolves the active month and returns the
// transactions belonging to it.
//
// The target month is the calendar month of the most recent transaction,
// found by sorting ascending by date after excluding transfers and
// deleted transactions. When nothing remains, the current real-world
// month is used and the filtered set is empty. The returned set is
// sorted descending by date for display; ties keep their input order
// (stable sort, no secondary key; only month bucketing affects output).
func FilterToTargetMonth(txs []domain.Transaction, payees []domain.Payee) (int, time.Month, []domain.Transaction) {
	candidates := lo.Filter(txs, func(tx domain.Transaction, _ int) bool {
		return !tx.Deleted && !IsTransfer(tx, payees)
	})
	if len(candidates) == 0 {
		year, month := YearMonth(time.Now())
		return year, month, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date)
	})
	year, month := YearMonth(candidates[len(candidates)-1].Date)

	inMonth := SameYearMonth(year, month)
	filtered := lo.Filter(candidates, func(tx domain.Transaction, _ int) bool {
		return inMonth(tx.Date)
	})
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[j].Date.Before(filtered[i].Date)
	})
	return year, month, filtered
}

// TotalIncome sums the positive amounts.
func TotalIncome(txs []domain.Transaction) int64 {
	return lo.SumBy(txs, func(tx domain.Transaction) int64 {
		if tx.Amount > 0 {
			return tx.Amount
		}
		return 0
	})
}

// TotalSpending sums the negative amounts. The result is <= 0; its
// magnitude is "spending". TotalIncome(t) + TotalSpending(t) equals the
// plain sum of t's amounts, exactly, in integer arithmetic.
func TotalSpending(txs []domain.Transaction) int64 {
	return lo.SumBy(txs, func(tx domain.Transaction) int64 {
		if tx.Amount < 0 {
			return tx.Amount
		}
		return 0
	})
}

// GroupByCategory buckets transactions by category id. Uncategorized
// transactions group under the empty string.
func GroupByCategory(txs []domain.Transaction) map[string][]domain.Transaction {
	return lo.GroupBy(txs, func(tx domain.Transaction) string {
		return tx.CategoryID
	})
}

// TotalByCategory sums each group's amounts, sign preserved: expense
// categories sum negative.
func TotalByCategory(grouped map[string][]domain.Transaction) map[string]int64 {
	totals := make(map[string]int64, len(grouped))
	for categoryID, txs := range grouped {
		totals[categoryID] = lo.SumBy(txs, func(tx domain.Transaction) int64 {
			return tx.Amount
		})
	}
	return totals
}
