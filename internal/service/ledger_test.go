package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/cache"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

// fakeStore is an in-memory port.LedgerStore, enough for service tests.
type fakeStore struct {
	budgets      map[string]*domain.Budget
	categories   map[string]*domain.Category
	transactions map[string]*domain.Transaction

	budgetGets int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		budgets:      make(map[string]*domain.Budget),
		categories:   make(map[string]*domain.Category),
		transactions: make(map[string]*domain.Transaction),
	}
}

func (f *fakeStore) FetchAccounts(_ context.Context, _ string) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeStore) FetchCategories(_ context.Context, _ string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) FetchPayees(_ context.Context, _ string) ([]domain.Payee, error) {
	return nil, nil
}

func (f *fakeStore) FetchTransactions(_ context.Context, _ string) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(f.transactions))
	for _, tx := range f.transactions {
		out = append(out, *tx)
	}
	return out, nil
}

func (f *fakeStore) ListBudgets(_ context.Context) ([]domain.Budget, error) { return nil, nil }

func (f *fakeStore) GetBudget(_ context.Context, budgetID string) (*domain.Budget, error) {
	f.budgetGets++
	b, ok := f.budgets[budgetID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
	}
	return b, nil
}

func (f *fakeStore) CreateBudget(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	f.budgets[b.ID] = b
	return b, nil
}

func (f *fakeStore) UpdateBudget(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	f.budgets[b.ID] = b
	return b, nil
}

func (f *fakeStore) DeleteBudget(_ context.Context, budgetID string) error {
	delete(f.budgets, budgetID)
	return nil
}

func (f *fakeStore) GetAccount(_ context.Context, _, accountID string) (*domain.Account, error) {
	return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
}

func (f *fakeStore) CreateAccount(_ context.Context, a *domain.Account) (*domain.Account, error) {
	return a, nil
}

func (f *fakeStore) UpdateAccount(_ context.Context, a *domain.Account) (*domain.Account, error) {
	return a, nil
}

func (f *fakeStore) DeleteAccount(_ context.Context, _, _ string) error { return nil }

func (f *fakeStore) GetPayee(_ context.Context, _, payeeID string) (*domain.Payee, error) {
	return nil, &domain.ErrNotFound{Resource: "payee", ID: payeeID}
}

func (f *fakeStore) CreatePayee(_ context.Context, p *domain.Payee) (*domain.Payee, error) {
	return p, nil
}

func (f *fakeStore) UpdatePayee(_ context.Context, p *domain.Payee) (*domain.Payee, error) {
	return p, nil
}

func (f *fakeStore) DeletePayee(_ context.Context, _, _ string) error { return nil }

func (f *fakeStore) GetCategory(_ context.Context, _, categoryID string) (*domain.Category, error) {
	c, ok := f.categories[categoryID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "category", ID: categoryID}
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeStore) UpdateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, _, categoryID string) error {
	delete(f.categories, categoryID)
	return nil
}

func (f *fakeStore) GetTransaction(_ context.Context, _, transactionID string) (*domain.Transaction, error) {
	tx, ok := f.transactions[transactionID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
	}
	return tx, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.transactions[tx.ID] = tx
	return tx, nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.transactions[tx.ID] = tx
	return tx, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, _, transactionID string) error {
	tx, ok := f.transactions[transactionID]
	if !ok {
		return &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
	}
	tx.Deleted = true
	return nil
}

func newLedgerService(store *fakeStore) *service.LedgerService {
	return service.NewLedgerService(
		store,
		cache.New[any](5*time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

// --- Tests ---

func TestCreateTransaction_SignByDirection(t *testing.T) {
	store := newFakeStore()
	svc := newLedgerService(store)

	out, err := svc.CreateTransaction(context.Background(), "b1", &domain.CreateTransactionRequest{
		Date:      "2023-06-05",
		Amount:    2000,
		Direction: domain.DirectionOutflow,
		AccountID: "a1",
		PayeeID:   "p1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Amount != -2000 {
		t.Errorf("expected stored amount -2000, got %d", out.Amount)
	}
	if out.ID == "" {
		t.Error("expected a generated id")
	}

	in, err := svc.CreateTransaction(context.Background(), "b1", &domain.CreateTransactionRequest{
		Date:      "2023-06-06",
		Amount:    3000,
		Direction: domain.DirectionInflow,
		AccountID: "a1",
		PayeeID:   "p1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if in.Amount != 3000 {
		t.Errorf("expected stored amount 3000, got %d", in.Amount)
	}
}

func TestCreateTransaction_RejectsNonPositiveMagnitude(t *testing.T) {
	svc := newLedgerService(newFakeStore())

	for _, amount := range []int64{0, -100} {
		_, err := svc.CreateTransaction(context.Background(), "b1", &domain.CreateTransactionRequest{
			Date:      "2023-06-05",
			Amount:    amount,
			Direction: domain.DirectionOutflow,
			AccountID: "a1",
			PayeeID:   "p1",
		})
		var verr *domain.ErrValidation
		if !errors.As(err, &verr) {
			t.Errorf("amount %d: expected ErrValidation, got %v", amount, err)
		}
	}
}

func TestCreateTransaction_RejectsBadDateAndDirection(t *testing.T) {
	svc := newLedgerService(newFakeStore())

	_, err := svc.CreateTransaction(context.Background(), "b1", &domain.CreateTransactionRequest{
		Date:      "05/06/2023",
		Amount:    100,
		Direction: domain.DirectionOutflow,
		AccountID: "a1",
		PayeeID:   "p1",
	})
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Errorf("expected ErrValidation for bad date, got %v", err)
	}

	_, err = svc.CreateTransaction(context.Background(), "b1", &domain.CreateTransactionRequest{
		Date:      "2023-06-05",
		Amount:    100,
		Direction: "sideways",
		AccountID: "a1",
		PayeeID:   "p1",
	})
	if !errors.As(err, &verr) {
		t.Errorf("expected ErrValidation for bad direction, got %v", err)
	}
}

func TestGetBudget_CachesReads(t *testing.T) {
	store := newFakeStore()
	store.budgets["b1"] = &domain.Budget{ID: "b1", Name: "Household"}
	svc := newLedgerService(store)

	for i := 0; i < 3; i++ {
		b, err := svc.GetBudget(context.Background(), "b1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Name != "Household" {
			t.Errorf("expected 'Household', got '%s'", b.Name)
		}
	}
	if store.budgetGets != 1 {
		t.Errorf("expected 1 store read, got %d", store.budgetGets)
	}
}

func TestUpdateBudget_InvalidatesCache(t *testing.T) {
	store := newFakeStore()
	store.budgets["b1"] = &domain.Budget{ID: "b1", Name: "Household"}
	svc := newLedgerService(store)

	if _, err := svc.GetBudget(context.Background(), "b1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.UpdateBudget(context.Background(), &domain.Budget{ID: "b1", Name: "Renamed"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	b, err := svc.GetBudget(context.Background(), "b1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.Name != "Renamed" {
		t.Errorf("expected fresh read after update, got '%s'", b.Name)
	}
}

func TestCreateBudget_Validation(t *testing.T) {
	svc := newLedgerService(newFakeStore())

	_, err := svc.CreateBudget(context.Background(), &domain.Budget{})
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}

	b, err := svc.CreateBudget(context.Background(), &domain.Budget{Name: "Household"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID == "" {
		t.Error("expected a generated id")
	}
	if b.Currency != "EUR" {
		t.Errorf("expected default currency EUR, got '%s'", b.Currency)
	}
}

func TestDeleteCategory_SoftDeletes(t *testing.T) {
	store := newFakeStore()
	store.categories["c1"] = &domain.Category{ID: "c1", BudgetID: "b1", Name: "Food"}
	svc := newLedgerService(store)

	if err := svc.DeleteCategory(context.Background(), "b1", "c1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c := store.categories["c1"]
	if c == nil {
		t.Fatal("category row must survive deletion")
	}
	if !c.IsDeleted {
		t.Error("expected is_deleted to be set")
	}
}
