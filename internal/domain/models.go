// Package domain defines the core business entities for the budget tracker.
// These models are independent of external services and represent the
// canonical data structures used throughout the API.
package domain

import "time"

// All monetary values are integer minor currency units (cents). Conversion
// to major units happens only at the formatting boundary.

// ============================================================
// Budgets
// ============================================================

// Budget is the top-level container for accounts, payees, categories
// and transactions.
type Budget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================
// Accounts
// ============================================================

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeOther    AccountType = "Other"
)

// Account represents a bank account within a budget. Balance is a cached,
// derived figure; the transaction stream is the source of truth for the
// figures used in budgeting.
type Account struct {
	ID         string      `json:"id"`
	BudgetID   string      `json:"budget_id"`
	Name       string      `json:"name"`
	ExternalID string      `json:"external_id,omitempty"`
	Type       AccountType `json:"type,omitempty"`
	Closed     bool        `json:"closed"`
	Balance    int64       `json:"balance"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ============================================================
// Payees
// ============================================================

// Payee is the counterparty of a transaction. A payee whose name begins
// with "Transfer" marks its transactions as internal transfers. This is a
// naming convention inherited from the import format, not a boolean field.
type Payee struct {
	ID         string `json:"id"`
	BudgetID   string `json:"budget_id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id,omitempty"`
}

// ============================================================
// Categories
// ============================================================

// Category is a node in the category tree. A category with no
// ParentCategoryID is a group; children reference their group's id.
// Used depth never exceeds two levels.
type Category struct {
	ID               string `json:"id"`
	BudgetID         string `json:"budget_id"`
	Name             string `json:"name"`
	ParentCategoryID string `json:"parent_category_id,omitempty"`
	IsHidden         bool   `json:"is_hidden"`
	IsDeleted        bool   `json:"is_deleted"`
}

// Displayed reports whether the category should appear in budget views.
func (c Category) Displayed() bool {
	return !c.IsHidden && !c.IsDeleted
}

// IsGroup reports whether the category is a top-level group.
func (c Category) IsGroup() bool {
	return c.ParentCategoryID == ""
}

// ============================================================
// Transactions
// ============================================================

// Transaction is a single signed ledger entry: positive amounts are
// income/credits, negative amounts are expenses/debits.
type Transaction struct {
	ID         string    `json:"id"`
	BudgetID   string    `json:"budget_id"`
	Date       time.Time `json:"date"`
	Amount     int64     `json:"amount"`
	AccountID  string    `json:"account_id"`
	PayeeID    string    `json:"payee_id"`
	CategoryID string    `json:"category_id,omitempty"`
	ExternalID string    `json:"external_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Cleared    bool      `json:"cleared"`
	Deleted    bool      `json:"deleted"`
}

// TransactionDirection determines the sign applied to a transaction's
// magnitude at creation time.
type TransactionDirection string

const (
	DirectionInflow  TransactionDirection = "inflow"
	DirectionOutflow TransactionDirection = "outflow"
)

// CreateTransactionRequest is the payload to create a transaction. Amount
// is an unsigned magnitude; the direction decides the stored sign.
type CreateTransactionRequest struct {
	Date       string               `json:"date"` // YYYY-MM-DD
	Amount     int64                `json:"amount"`
	Direction  TransactionDirection `json:"direction"`
	AccountID  string               `json:"account_id"`
	PayeeID    string               `json:"payee_id"`
	CategoryID string               `json:"category_id,omitempty"`
	ExternalID string               `json:"external_id,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	Cleared    bool                 `json:"cleared"`
}

// ============================================================
// Display lookup
// ============================================================

// Key/Label implementations let accounts, payees and categories share a
// single generic id → display-name lookup.

// Key returns the account id.
func (a Account) Key() string { return a.ID }

// Label returns the account display name.
func (a Account) Label() string { return a.Name }

// Key returns the payee id.
func (p Payee) Key() string { return p.ID }

// Label returns the payee display name.
func (p Payee) Label() string { return p.Name }

// Key returns the category id.
func (c Category) Key() string { return c.ID }

// Label returns the category display name.
func (c Category) Label() string { return c.Name }

// ============================================================
// Goals
// ============================================================

// GoalType is the kind of savings/spending goal attached to a category.
type GoalType string

const (
	GoalBalanceByDate  GoalType = "BalanceByDate"
	GoalMonthlyBudget  GoalType = "MonthlyBudget"
	GoalMinimumBalance GoalType = "MinimumBalance"
)

// Goal is evaluated against a category's current balance/budgeted/activity
// for the active month. Goals are supplied per invocation via an external
// mapping, not persisted on the category.
type Goal struct {
	Type       GoalType  `json:"type" yaml:"type"`
	Target     int64     `json:"target" yaml:"target"`
	StartMonth time.Time `json:"start_month" yaml:"start_month"`
	EndMonth   time.Time `json:"end_month" yaml:"end_month"`
}

// ============================================================
// Month view (computed fresh on every request, never persisted or cached)
// ============================================================

// MonthCategory is one per-category row of the month view.
type MonthCategory struct {
	CategoryID string `json:"category_id"`
	Budgeted   int64  `json:"budgeted"`
	Activity   int64  `json:"activity"`
	Balance    int64  `json:"balance"`
	Goals      []Goal `json:"goals,omitempty"`
}

// Month is the computed zero-based budget summary for one calendar month.
type Month struct {
	Name         string          `json:"name"` // full month name, e.g. "June"
	Year         int             `json:"year"`
	Income       int64           `json:"income"`
	Budgeted     int64           `json:"budgeted"`
	ToBeBudgeted int64           `json:"to_be_budgeted"`
	Activity     int64           `json:"activity"`
	Categories   []MonthCategory `json:"categories"`
}

// ============================================================
// Month budget view (display-shaped API response)
// ============================================================

// MonthBudgetView is returned by the months endpoint: the month label,
// totals, the per-group category rows and the month's transaction list,
// every amount pre-formatted for display.
type MonthBudgetView struct {
	Month        string               `json:"month"` // e.g. "June 2023"
	Income       string               `json:"income"`
	Spending     string               `json:"spending"` // absolute value
	Net          string               `json:"net"`
	ToBeBudgeted string               `json:"to_be_budgeted"` // placeholder, not computed
	Groups       []MonthGroupView     `json:"groups"`
	Transactions []TransactionRowView `json:"transactions"`
}

// MonthGroupView is a top-level category group with its child rows.
type MonthGroupView struct {
	CategoryID string              `json:"category_id"`
	Name       string              `json:"name"`
	Categories []MonthCategoryView `json:"categories"`
}

// MonthCategoryView is one displayed child-category row.
type MonthCategoryView struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Goal       string `json:"goal,omitempty"` // descriptor of the first goal, if any
	Activity   string `json:"activity"`
	Available  string `json:"available"` // always "-": running balance is not computed
}

// TransactionRowView is one display-ready row of the month transaction list.
type TransactionRowView struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Account  string `json:"account"`
	Payee    string `json:"payee"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes,omitempty"`
}

// ============================================================
// Auth
// ============================================================

// TokenRequest is the body for POST /v1/auth/token.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse is the body for 200 from POST /v1/auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// ============================================================
// Metrics API Responses
// ============================================================

// MetricsSummary is returned by GET /v1/metrics/summary.
type MetricsSummary struct {
	TotalRequests     int64   `json:"total_requests"`
	ErrorRate         float64 `json:"error_rate"`
	MonthComputations int64   `json:"month_computations"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	Period            string  `json:"period"`
}

// ============================================================
// Health API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// ============================================================
// Generic API Response wrappers
// ============================================================

// ListResponse wraps list results.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// SuccessResponse wraps a successful single-entity response.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
