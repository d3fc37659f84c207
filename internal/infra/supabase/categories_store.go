package supabase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// ============================================================
// Categories — CRUD via PostgREST
// ============================================================

func (c *Client) GetCategory(ctx context.Context, budgetID, categoryID string) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCategory")
	defer span.End()

	path := fmt.Sprintf("categories?budget_id=eq.%s&id=eq.%s&limit=1", budgetID, categoryID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Category](body)
	if err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	if row == nil {
		return nil, &domain.ErrNotFound{Resource: "category", ID: categoryID}
	}
	return row, nil
}

func (c *Client) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCategory")
	defer span.End()

	body, err := c.doPost(ctx, "categories", map[string]any{
		"id":                 category.ID,
		"budget_id":          category.BudgetID,
		"name":               category.Name,
		"parent_category_id": nullable(category.ParentCategoryID),
		"is_hidden":          category.IsHidden,
		"is_deleted":         category.IsDeleted,
	})
	if err != nil {
		return nil, err
	}

	row, err := decodeFirst[domain.Category](body)
	if err != nil {
		return nil, fmt.Errorf("decode created category: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("supabase: empty response creating category")
	}
	return row, nil
}

func (c *Client) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCategory")
	defer span.End()

	path := fmt.Sprintf("categories?budget_id=eq.%s&id=eq.%s", category.BudgetID, category.ID)
	err := c.doPatch(ctx, path, map[string]any{
		"name":               category.Name,
		"parent_category_id": nullable(category.ParentCategoryID),
		"is_hidden":          category.IsHidden,
		"is_deleted":         category.IsDeleted,
	})
	if err != nil {
		return nil, err
	}
	return c.GetCategory(ctx, category.BudgetID, category.ID)
}

func (c *Client) DeleteCategory(ctx context.Context, budgetID, categoryID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCategory")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("categories?budget_id=eq.%s&id=eq.%s", budgetID, categoryID))
}

// nullable maps an empty string to SQL NULL so parent_category_id stays a
// real foreign key instead of an empty-string sentinel in the table.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
