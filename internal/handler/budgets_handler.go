package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

// ============================================================
// Budgets — CRUD
// ============================================================

func listBudgetsHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets")
		defer span.End()

		budgets, err := ledger.ListBudgets(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Budget]{Data: budgets, Total: len(budgets)})
	}
}

func createBudgetHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets")
		defer span.End()

		var budget domain.Budget
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := ledger.CreateBudget(ctx, &budget)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getBudgetHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}")
		defer span.End()

		budgetID := chi.URLParam(r, "budgetId")
		span.SetAttributes(attribute.String("budget.id", budgetID))

		budget, err := ledger.GetBudget(ctx, budgetID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func updateBudgetHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{budgetId}")
		defer span.End()

		var budget domain.Budget
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		budget.ID = chi.URLParam(r, "budgetId")

		updated, err := ledger.UpdateBudget(ctx, &budget)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteBudgetHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/budgets/{budgetId}")
		defer span.End()

		budgetID := chi.URLParam(r, "budgetId")
		if err := ledger.DeleteBudget(ctx, budgetID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "budget deleted", ID: budgetID})
	}
}
