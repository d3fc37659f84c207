// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// SnapshotFetcher retrieves the four record sets a month view is computed
// from. The month assembler fans out over these concurrently.
type SnapshotFetcher interface {
	FetchAccounts(ctx context.Context, budgetID string) ([]domain.Account, error)
	FetchCategories(ctx context.Context, budgetID string) ([]domain.Category, error)
	FetchPayees(ctx context.Context, budgetID string) ([]domain.Payee, error)
	FetchTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error)
}

// LedgerStore defines all persistence operations for budget data.
// Implemented by the Supabase adapter (or any other persistence layer).
type LedgerStore interface {
	SnapshotFetcher

	// Budgets
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error)
	CreateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error

	// Accounts
	GetAccount(ctx context.Context, budgetID, accountID string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	DeleteAccount(ctx context.Context, budgetID, accountID string) error

	// Payees
	GetPayee(ctx context.Context, budgetID, payeeID string) (*domain.Payee, error)
	CreatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error)
	UpdatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error)
	DeletePayee(ctx context.Context, budgetID, payeeID string) error

	// Categories
	GetCategory(ctx context.Context, budgetID, categoryID string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, budgetID, categoryID string) error

	// Transactions
	GetTransaction(ctx context.Context, budgetID, transactionID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, budgetID, transactionID string) error
}
