package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boddenberg/budgeteer-api-go/internal/budget"
	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/port"
)

var tracer = otel.Tracer("service/month")

// MonthService assembles the current-month budget view from a fresh
// snapshot of the budget's records. Results are never cached: every call
// recomputes from whatever the store returns, so the operation stays
// idempotent and side-effect free.
type MonthService struct {
	fetcher      port.SnapshotFetcher
	defaultGoals map[string]domain.Goal
	currency     budget.Currency
	hiddenNames  []string
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewMonthService creates the month assembler with all dependencies
// injected. defaultGoals is the configured goals-by-category mapping used
// when the caller supplies none.
func NewMonthService(
	fetcher port.SnapshotFetcher,
	defaultGoals map[string]domain.Goal,
	currency budget.Currency,
	hiddenNames []string,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *MonthService {
	if defaultGoals == nil {
		defaultGoals = map[string]domain.Goal{}
	}
	return &MonthService{
		fetcher:      fetcher,
		defaultGoals: defaultGoals,
		currency:     currency,
		hiddenNames:  hiddenNames,
		metrics:      metrics,
		logger:       logger,
	}
}

// snapshot holds the four record sets a month view is computed from.
type snapshot struct {
	accounts     []domain.Account
	categories   []domain.Category
	payees       []domain.Payee
	transactions []domain.Transaction
}

// ComputeMonthBudget builds the budget view for the active month. A nil
// goals mapping means "use the configured one"; an explicit mapping (even
// an empty one) replaces it for this invocation only.
func (s *MonthService) ComputeMonthBudget(ctx context.Context, budgetID string, goals map[string]domain.Goal) (*domain.MonthBudgetView, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Month.ComputeMonthBudget")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("month_budget", time.Since(start))
	}()

	trigger := "refresh"
	if goals == nil {
		goals = s.defaultGoals
		trigger = "get"
	}

	snap, err := s.fetchSnapshot(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	categories := budget.ApplyDefaultHidden(snap.categories, s.hiddenNames)

	year, month, monthTxs := budget.FilterToTargetMonth(snap.transactions, snap.payees)

	income := budget.TotalIncome(monthTxs)
	spending := budget.TotalSpending(monthTxs)
	net := income + spending

	totals := budget.TotalByCategory(budget.GroupByCategory(monthTxs))

	// One zeroed row per category; activity filled from the month's
	// transactions, goals attached from the mapping. Nothing is budgeted
	// in this model, so balance reduces to activity.
	rows := make([]domain.MonthCategory, 0, len(categories))
	for _, c := range categories {
		row := domain.MonthCategory{
			CategoryID: c.ID,
			Activity:   totals[c.ID],
		}
		row.Balance = row.Budgeted + row.Activity
		if g, ok := goals[c.ID]; ok {
			row.Goals = []domain.Goal{g}
		}
		rows = append(rows, row)
	}

	groups := make([]domain.MonthGroupView, 0)
	for _, groupRow := range budget.VisibleGroups(rows, categories) {
		children := budget.ChildrenOf(groupRow.CategoryID, rows, categories)
		views := make([]domain.MonthCategoryView, 0, len(children))
		for _, child := range children {
			if !budget.IsDisplayed(child.CategoryID, categories) {
				continue
			}
			view := domain.MonthCategoryView{
				CategoryID: child.CategoryID,
				Name:       budget.NameOf(child.CategoryID, categories),
				Activity:   s.currency.Format(child.Activity),
				Available:  "-",
			}
			if len(child.Goals) > 0 {
				view.Goal = budget.DescribeGoal(s.currency, child.Goals[0], child.Balance, child.Budgeted, child.Activity)
			}
			views = append(views, view)
		}
		groups = append(groups, domain.MonthGroupView{
			CategoryID: groupRow.CategoryID,
			Name:       budget.NameOf(groupRow.CategoryID, categories),
			Categories: views,
		})
	}

	txRows := make([]domain.TransactionRowView, 0, len(monthTxs))
	for _, tx := range monthTxs {
		txRows = append(txRows, domain.TransactionRowView{
			ID:       tx.ID,
			Date:     budget.FormatDate(tx.Date),
			Account:  budget.LabelOf(tx.AccountID, snap.accounts),
			Payee:    budget.LabelOf(tx.PayeeID, snap.payees),
			Category: budget.NameOf(tx.CategoryID, categories),
			Amount:   s.currency.Format(tx.Amount),
			Notes:    tx.Notes,
		})
	}

	s.metrics.IncrMonthComputation(trigger)
	s.logger.Info("month budget computed",
		zap.String("budget_id", budgetID),
		zap.String("month", budget.MonthLabel(year, month)),
		zap.Int("transactions", len(txRows)),
		zap.Int("groups", len(groups)),
	)

	return &domain.MonthBudgetView{
		Month:        budget.MonthLabel(year, month),
		Income:       s.currency.Format(income),
		Spending:     s.currency.Format(-spending),
		Net:          s.currency.Format(net),
		ToBeBudgeted: "-",
		Groups:       groups,
		Transactions: txRows,
	}, nil
}

// fetchSnapshot runs the four record fetches concurrently. A failure in
// any of them fails the whole snapshot; every failure is collected so the
// caller sees the full picture, not just the first one.
func (s *MonthService) fetchSnapshot(ctx context.Context, budgetID string) (*snapshot, error) {
	var (
		snap     snapshot
		mu       sync.Mutex
		failures = make(map[string]error)
	)

	fail := func(resource string, err error) {
		s.logger.Error("snapshot fetch failed",
			zap.String("budget_id", budgetID),
			zap.String("resource", resource),
			zap.Error(err),
		)
		s.metrics.IncrExternalError(resource)
		mu.Lock()
		failures[resource] = err
		mu.Unlock()
	}

	// Goroutines record failures instead of returning them, so one bad
	// fetch never cancels the others and all failures get reported.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.fetcher.FetchAccounts(gCtx, budgetID)
		if err != nil {
			fail("accounts", err)
			return nil
		}
		snap.accounts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetcher.FetchCategories(gCtx, budgetID)
		if err != nil {
			fail("categories", err)
			return nil
		}
		snap.categories = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetcher.FetchPayees(gCtx, budgetID)
		if err != nil {
			fail("payees", err)
			return nil
		}
		snap.payees = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetcher.FetchTransactions(gCtx, budgetID)
		if err != nil {
			fail("transactions", err)
			return nil
		}
		snap.transactions = rows
		return nil
	})

	_ = g.Wait()

	if len(failures) > 0 {
		return nil, &domain.FetchError{Failures: failures}
	}
	return &snap, nil
}
