package supabase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// ============================================================
// Accounts — CRUD via PostgREST
// ============================================================

func (c *Client) GetAccount(ctx context.Context, budgetID, accountID string) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetAccount")
	defer span.End()

	path := fmt.Sprintf("accounts?budget_id=eq.%s&id=eq.%s&limit=1", budgetID, accountID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Account](body)
	if err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
	}
	return row, nil
}

func (c *Client) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateAccount")
	defer span.End()

	body, err := c.doPost(ctx, "accounts", map[string]any{
		"id":          account.ID,
		"budget_id":   account.BudgetID,
		"name":        account.Name,
		"external_id": account.ExternalID,
		"type":        account.Type,
		"closed":      account.Closed,
		"balance":     account.Balance,
	})
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Account](body)
	if err != nil {
		return nil, fmt.Errorf("decode created account: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("supabase: empty response creating account")
	}
	return row, nil
}

func (c *Client) UpdateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateAccount")
	defer span.End()

	path := fmt.Sprintf("accounts?budget_id=eq.%s&id=eq.%s", account.BudgetID, account.ID)
	err := c.doPatch(ctx, path, map[string]any{
		"name":        account.Name,
		"external_id": account.ExternalID,
		"type":        account.Type,
		"closed":      account.Closed,
		"balance":     account.Balance,
	})
	if err != nil {
		return nil, err
	}
	return c.GetAccount(ctx, account.BudgetID, account.ID)
}

func (c *Client) DeleteAccount(ctx context.Context, budgetID, accountID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteAccount")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("accounts?budget_id=eq.%s&id=eq.%s", budgetID, accountID))
}
