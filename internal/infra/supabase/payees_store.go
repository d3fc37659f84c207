package supabase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// ============================================================
// Payees — CRUD via PostgREST
// ============================================================

func (c *Client) GetPayee(ctx context.Context, budgetID, payeeID string) (*domain.Payee, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetPayee")
	defer span.End()

	path := fmt.Sprintf("payees?budget_id=eq.%s&id=eq.%s&limit=1", budgetID, payeeID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Payee](body)
	if err != nil {
		return nil, fmt.Errorf("decode payee: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "payee", ID: payeeID}
	}
	return row, nil
}

func (c *Client) CreatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePayee")
	defer span.End()

	body, err := c.doPost(ctx, "payees", map[string]any{
		"id":          payee.ID,
		"budget_id":   payee.BudgetID,
		"name":        payee.Name,
		"external_id": payee.ExternalID,
	})
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Payee](body)
	if err != nil {
		return nil, fmt.Errorf("decode created payee: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("supabase: empty response creating payee")
	}
	return row, nil
}

func (c *Client) UpdatePayee(ctx context.Context, payee *domain.Payee) (*domain.Payee, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdatePayee")
	defer span.End()

	path := fmt.Sprintf("payees?budget_id=eq.%s&id=eq.%s", payee.BudgetID, payee.ID)
	err := c.doPatch(ctx, path, map[string]any{
		"name":        payee.Name,
		"external_id": payee.ExternalID,
	})
	if err != nil {
		return nil, err
	}
	return c.GetPayee(ctx, payee.BudgetID, payee.ID)
}

func (c *Client) DeletePayee(ctx context.Context, budgetID, payeeID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeletePayee")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("payees?budget_id=eq.%s&id=eq.%s", budgetID, payeeID))
}
