package handler_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// stubStore is an in-memory port.LedgerStore for routing tests.
type stubStore struct {
	budgets      map[string]domain.Budget
	accounts     []domain.Account
	categories   []domain.Category
	payees       []domain.Payee
	transactions []domain.Transaction

	failFetches bool
}

func newStubStore() *stubStore {
	return &stubStore{budgets: map[string]domain.Budget{}}
}

func (s *stubStore) FetchAccounts(ctx context.Context, budgetID string) ([]domain.Account, error) {
	if s.failFetches {
		return nil, errors.New("store down")
	}
	return s.accounts, nil
}

func (s *stubStore) FetchCategories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	if s.failFetches {
		return nil, errors.New("store down")
	}
	return s.categories, nil
}

func (s *stubStore) FetchPayees(ctx context.Context, budgetID string) ([]domain.Payee, error) {
	if s.failFetches {
		return nil, errors.New("store down")
	}
	return s.payees, nil
}

func (s *stubStore) FetchTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	if s.failFetches {
		return nil, errors.New("store down")
	}
	return s.transactions, nil
}

func (s *stubStore) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	out := make([]domain.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubStore) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	b, ok := s.budgets[budgetID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
	}
	return &b, nil
}

func (s *stubStore) CreateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	s.budgets[budget.ID] = *budget
	return budget, nil
}

func (s *stubStore) UpdateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	if _, ok := s.budgets[budget.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budget.ID}
	}
	s.budgets[budget.ID] = *budget
	return budget, nil
}

func (s *stubStore) DeleteBudget(ctx context.Context, budgetID string) error {
	delete(s.budgets, budgetID)
	return nil
}

func (s *stubStore) GetAccount(ctx context.Context, budgetID, accountID string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.ID == accountID {
			return &a, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
}

func (s *stubStore) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	s.accounts = append(s.accounts, *account)
	return account, nil
}

func (s *stubStore) UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	for i, a := range s.accounts {
		if a.ID == account.ID {
			s.accounts[i] = *account
			return account, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: account.ID}
}

func (s *stubStore) DeleteAccount(ctx context.Context, budgetID, accountID string) error {
	return nil
}

func (s *stubStore) GetPayee(ctx context.Context, budgetID, payeeID string) (*domain.Payee, error) {
	for _, p := range s.payees {
		if p.ID == payeeID {
			return &p, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "payee", ID: payeeID}
}

func (s *stubStore) CreatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	s.payees = append(s.payees, *payee)
	return payee, nil
}

func (s *stubStore) UpdatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	for i, p := range s.payees {
		if p.ID == payee.ID {
			s.payees[i] = *payee
			return payee, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "payee", ID: payee.ID}
}

func (s *stubStore) DeletePayee(ctx context.Context, budgetID, payeeID string) error {
	return nil
}

func (s *stubStore) GetCategory(ctx context.Context, budgetID, categoryID string) (*domain.Category, error) {
	for _, c := range s.categories {
		if c.ID == categoryID {
			return &c, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "category", ID: categoryID}
}

func (s *stubStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.categories = append(s.categories, *category)
	return category, nil
}

func (s *stubStore) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for i, c := range s.categories {
		if c.ID == category.ID {
			s.categories[i] = *category
			return category, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "category", ID: category.ID}
}

func (s *stubStore) DeleteCategory(ctx context.Context, budgetID, categoryID string) error {
	return nil
}

func (s *stubStore) GetTransaction(ctx context.Context, budgetID, transactionID string) (*domain.Transaction, error) {
	for _, tx := range s.transactions {
		if tx.ID == transactionID {
			return &tx, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
}

func (s *stubStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.transactions = append(s.transactions, *tx)
	return tx, nil
}

func (s *stubStore) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	for i, existing := range s.transactions {
		if existing.ID == tx.ID {
			s.transactions[i] = *tx
			return tx, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: tx.ID}
}

func (s *stubStore) DeleteTransaction(ctx context.Context, budgetID, transactionID string) error {
	for i := range s.transactions {
		if s.transactions[i].ID == transactionID {
			s.transactions[i].Deleted = true
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", transactionID, &domain.ErrNotFound{Resource: "transaction", ID: transactionID})
}
