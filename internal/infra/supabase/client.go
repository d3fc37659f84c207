// Package supabase provides the persistence adapter for budget data,
// backed by Supabase's PostgREST API. It implements port.LedgerStore.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/resilience"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to Supabase PostgREST API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	logger         *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		cfg:            cfg,
		logger:         logger,
	}
}

// doRequest executes an authenticated request to Supabase PostgREST.
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		c.logger.Error("supabase: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("supabase: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// fetchRows runs a resilient GET (circuit breaker + retry with backoff)
// and decodes the JSON array response into dst.
func (c *Client) fetchRows(ctx context.Context, resource, path string, dst any) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}
			if body == nil {
				body = []byte("[]")
			}
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("decode %s: %w", resource, err)
			}
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &domain.ErrCircuitOpen{Service: "supabase/" + resource}
		}
		return &domain.ErrExternalService{Service: "supabase/" + resource, Err: err}
	}
	return nil
}

// ============================================================
// Snapshot fetches (implements port.SnapshotFetcher)
// ============================================================

// FetchAccounts returns every account of a budget.
func (c *Client) FetchAccounts(ctx context.Context, budgetID string) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FetchAccounts")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	rows := []domain.Account{}
	path := fmt.Sprintf("accounts?budget_id=eq.%s&order=created_at.asc", budgetID)
	if err := c.fetchRows(ctx, "accounts", path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchCategories returns every category of a budget, hidden and deleted
// ones included. Visibility filtering is the caller's concern.
func (c *Client) FetchCategories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FetchCategories")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	rows := []domain.Category{}
	path := fmt.Sprintf("categories?budget_id=eq.%s&order=name.asc", budgetID)
	if err := c.fetchRows(ctx, "categories", path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchPayees returns every payee of a budget.
func (c *Client) FetchPayees(ctx context.Context, budgetID string) ([]domain.Payee, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FetchPayees")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	rows := []domain.Payee{}
	path := fmt.Sprintf("payees?budget_id=eq.%s&order=name.asc", budgetID)
	if err := c.fetchRows(ctx, "payees", path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchTransactions returns every transaction of a budget, deleted rows
// included so callers can apply their own exclusion rules.
func (c *Client) FetchTransactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FetchTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("budget.id", budgetID))

	rows := []transactionRow{}
	path := fmt.Sprintf("transactions?budget_id=eq.%s&order=date.asc", budgetID)
	if err := c.fetchRows(ctx, "transactions", path, &rows); err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, r.toDomain())
	}
	return txs, nil
}
