package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/port"
)

var ledgerTracer = otel.Tracer("service/ledger")

// LedgerService handles CRUD for budgets and their records. Only budget
// metadata reads go through the cache; record lists always hit the store
// so the month view never sees stale data.
type LedgerService struct {
	store   port.LedgerStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLedgerService creates the ledger service with all dependencies injected.
func NewLedgerService(store port.LedgerStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Budgets
// ============================================================

func (s *LedgerService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.ListBudgets")
	defer span.End()

	return s.store.ListBudgets(ctx)
}

func (s *LedgerService) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.GetBudget")
	defer span.End()

	cacheKey := fmt.Sprintf("budget:%s", budgetID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if b, ok := cached.(*domain.Budget); ok {
			s.metrics.IncrCacheHit("budgets")
			return b, nil
		}
	}
	s.metrics.IncrCacheMiss("budgets")

	b, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, b)
	return b, nil
}

func (s *LedgerService) CreateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.CreateBudget")
	defer span.End()

	if budget.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	if budget.Currency == "" {
		budget.Currency = "EUR"
	}

	created, err := s.store.CreateBudget(ctx, budget)
	if err != nil {
		return nil, err
	}
	s.logger.Info("budget created", zap.String("budget_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *LedgerService) UpdateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.UpdateBudget")
	defer span.End()

	if budget.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}

	updated, err := s.store.UpdateBudget(ctx, budget)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(fmt.Sprintf("budget:%s", budget.ID))
	return updated, nil
}

func (s *LedgerService) DeleteBudget(ctx context.Context, budgetID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.DeleteBudget")
	defer span.End()

	if err := s.store.DeleteBudget(ctx, budgetID); err != nil {
		return err
	}
	s.cache.Delete(fmt.Sprintf("budget:%s", budgetID))
	s.logger.Info("budget deleted", zap.String("budget_id", budgetID))
	return nil
}

// ============================================================
// Accounts
// ============================================================

func (s *LedgerService) ListAccounts(ctx context.Context, budgetID string) ([]domain.Account, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.ListAccounts")
	defer span.End()

	return s.store.FetchAccounts(ctx, budgetID)
}

func (s *LedgerService) GetAccount(ctx context.Context, budgetID, accountID string) (*domain.Account, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.GetAccount")
	defer span.End()

	return s.store.GetAccount(ctx, budgetID, accountID)
}

func (s *LedgerService) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.CreateAccount")
	defer span.End()

	if account.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	return s.store.CreateAccount(ctx, account)
}

func (s *LedgerService) UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.UpdateAccount")
	defer span.End()

	if account.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	return s.store.UpdateAccount(ctx, account)
}

func (s *LedgerService) DeleteAccount(ctx context.Context, budgetID, accountID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.DeleteAccount")
	defer span.End()

	return s.store.DeleteAccount(ctx, budgetID, accountID)
}

// ============================================================
// Payees
// ============================================================

func (s *LedgerService) ListPayees(ctx context.Context, budgetID string) ([]domain.Payee, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.ListPayees")
	defer span.End()

	return s.store.FetchPayees(ctx, budgetID)
}

func (s *LedgerService) GetPayee(ctx context.Context, budgetID, payeeID string) (*domain.Payee, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.GetPayee")
	defer span.End()

	return s.store.GetPayee(ctx, budgetID, payeeID)
}

func (s *LedgerService) CreatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.CreatePayee")
	defer span.End()

	if payee.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if payee.ID == "" {
		payee.ID = uuid.NewString()
	}
	return s.store.CreatePayee(ctx, payee)
}

func (s *LedgerService) UpdatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.UpdatePayee")
	defer span.End()

	if payee.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	return s.store.UpdatePayee(ctx, payee)
}

func (s *LedgerService) DeletePayee(ctx context.Context, budgetID, payeeID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.DeletePayee")
	defer span.End()

	return s.store.DeletePayee(ctx, budgetID, payeeID)
}

// ============================================================
// Categories
// ============================================================

func (s *LedgerService) ListCategories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.ListCategories")
	defer span.End()

	return s.store.FetchCategories(ctx, budgetID)
}

func (s *LedgerService) GetCategory(ctx context.Context, budgetID, categoryID string) (*domain.Category, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.GetCategory")
	defer span.End()

	return s.store.GetCategory(ctx, budgetID, categoryID)
}

func (s *LedgerService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.CreateCategory")
	defer span.End()

	if category.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	return s.store.CreateCategory(ctx, category)
}

func (s *LedgerService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.UpdateCategory")
	defer span.End()

	if category.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	return s.store.UpdateCategory(ctx, category)
}

// DeleteCategory soft-deletes: the category keeps its place in the tree
// with is_deleted set, so historical transactions still resolve its name.
func (s *LedgerService) DeleteCategory(ctx context.Context, budgetID, categoryID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.DeleteCategory")
	defer span.End()

	c, err := s.store.GetCategory(ctx, budgetID, categoryID)
	if err != nil {
		return err
	}
	c.IsDeleted = true
	_, err = s.store.UpdateCategory(ctx, c)
	return err
}

// ============================================================
// Transactions
// ============================================================

func (s *LedgerService) ListTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.ListTransactions")
	defer span.End()

	return s.store.FetchTransactions(ctx, budgetID)
}

func (s *LedgerService) GetTransaction(ctx context.Context, budgetID, transactionID string) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.GetTransaction")
	defer span.End()

	return s.store.GetTransaction(ctx, budgetID, transactionID)
}

// CreateTransaction validates the request and stores the signed entry.
// The request carries an unsigned magnitude plus a direction; the stored
// amount is negative for outflows, positive for inflows.
func (s *LedgerService) CreateTransaction(ctx context.Context, budgetID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.CreateTransaction")
	defer span.End()

	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be strictly positive"}
	}
	if req.AccountID == "" {
		return nil, &domain.ErrValidation{Field: "account_id", Message: "must not be empty"}
	}
	if req.PayeeID == "" {
		return nil, &domain.ErrValidation{Field: "payee_id", Message: "must not be empty"}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	amount := req.Amount
	switch req.Direction {
	case domain.DirectionInflow:
	case domain.DirectionOutflow:
		amount = -amount
	default:
		return nil, &domain.ErrValidation{Field: "direction", Message: "must be inflow or outflow"}
	}

	tx := &domain.Transaction{
		ID:         uuid.NewString(),
		BudgetID:   budgetID,
		Date:       date,
		Amount:     amount,
		AccountID:  req.AccountID,
		PayeeID:    req.PayeeID,
		CategoryID: req.CategoryID,
		ExternalID: req.ExternalID,
		Notes:      req.Notes,
		Cleared:    req.Cleared,
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("transaction created",
		zap.String("budget_id", budgetID),
		zap.String("transaction_id", created.ID),
		zap.Int64("amount", created.Amount),
	)
	return created, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.UpdateTransaction")
	defer span.End()

	if tx.Amount == 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must not be zero"}
	}
	return s.store.UpdateTransaction(ctx, tx)
}

// DeleteTransaction soft-deletes; the row stays visible to imports that
// reconcile by external id.
func (s *LedgerService) DeleteTransaction(ctx context.Context, budgetID, transactionID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.DeleteTransaction")
	defer span.End()

	return s.store.DeleteTransaction(ctx, budgetID, transactionID)
}
