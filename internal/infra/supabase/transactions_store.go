package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// ============================================================
// Transactions — CRUD via PostgREST
// ============================================================

// transactionRow maps the transactions table. Dates are stored as SQL
// date columns, so they arrive as plain YYYY-MM-DD strings.
type transactionRow struct {
	ID         string `json:"id"`
	BudgetID   string `json:"budget_id"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	AccountID  string `json:"account_id"`
	PayeeID    string `json:"payee_id"`
	CategoryID string `json:"category_id"`
	ExternalID string `json:"external_id"`
	Notes      string `json:"notes"`
	Cleared    bool   `json:"cleared"`
	Deleted    bool   `json:"deleted"`
}

func (r transactionRow) toDomain() domain.Transaction {
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, r.Date)
	}
	return domain.Transaction{
		ID:         r.ID,
		BudgetID:   r.BudgetID,
		Date:       t,
		Amount:     r.Amount,
		AccountID:  r.AccountID,
		PayeeID:    r.PayeeID,
		CategoryID: r.CategoryID,
		ExternalID: r.ExternalID,
		Notes:      r.Notes,
		Cleared:    r.Cleared,
		Deleted:    r.Deleted,
	}
}

func txColumns(tx *domain.Transaction) map[string]any {
	return map[string]any{
		"date":        tx.Date.UTC().Format("2006-01-02"),
		"amount":      tx.Amount,
		"account_id":  tx.AccountID,
		"payee_id":    tx.PayeeID,
		"category_id": nullable(tx.CategoryID),
		"external_id": tx.ExternalID,
		"notes":       tx.Notes,
		"cleared":     tx.Cleared,
		"deleted":     tx.Deleted,
	}
}

func (c *Client) GetTransaction(ctx context.Context, budgetID, transactionID string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?budget_id=eq.%s&id=eq.%s&limit=1", budgetID, transactionID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[transactionRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
	}
	tx := row.toDomain()
	return &tx, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTransaction")
	defer span.End()

	cols := txColumns(tx)
	cols["id"] = tx.ID
	cols["budget_id"] = tx.BudgetID

	body, err := c.doPost(ctx, "transactions", cols)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[transactionRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode created transaction: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("supabase: empty response creating transaction")
	}
	created := row.toDomain()
	return &created, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?budget_id=eq.%s&id=eq.%s", tx.BudgetID, tx.ID)
	if err := c.doPatch(ctx, path, txColumns(tx)); err != nil {
		return nil, err
	}
	return c.GetTransaction(ctx, tx.BudgetID, tx.ID)
}

// DeleteTransaction soft-deletes: the row stays in the table with its
// deleted flag set, mirroring how imports reconcile against external ids.
func (c *Client) DeleteTransaction(ctx context.Context, budgetID, transactionID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?budget_id=eq.%s&id=eq.%s", budgetID, transactionID)
	return c.doPatch(ctx, path, map[string]any{"deleted": true})
}
