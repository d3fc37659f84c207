package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// ============================================================
// Budgets — CRUD via PostgREST
// ============================================================

func (c *Client) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListBudgets")
	defer span.End()

	body, err := c.doRequest(ctx, http.MethodGet, "budgets?order=created_at.asc")
	if err != nil {
		return nil, err
	}

	rows := []domain.Budget{}
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode budgets: %w", err)
		}
	}
	return rows, nil
}

func (c *Client) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBudget")
	defer span.End()

	path := fmt.Sprintf("budgets?id=eq.%s&limit=1", budgetID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Budget](body)
	if err != nil {
		return nil, fmt.Errorf("decode budget: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
	}
	return row, nil
}

func (c *Client) CreateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateBudget")
	defer span.End()

	body, err := c.doPost(ctx, "budgets", map[string]any{
		"id":       budget.ID,
		"name":     budget.Name,
		"currency": budget.Currency,
	})
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Budget](body)
	if err != nil {
		return nil, fmt.Errorf("decode created budget: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("supabase: empty response creating budget")
	}
	return row, nil
}

func (c *Client) UpdateBudget(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateBudget")
	defer span.End()

	err := c.doPatch(ctx, fmt.Sprintf("budgets?id=eq.%s", budget.ID), map[string]any{
		"name":     budget.Name,
		"currency": budget.Currency,
	})
	if err != nil {
		return nil, err
	}
	return c.GetBudget(ctx, budget.ID)
}

func (c *Client) DeleteBudget(ctx context.Context, budgetID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBudget")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("budgets?id=eq.%s", budgetID))
}
