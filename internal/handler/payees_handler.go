package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

// ============================================================
// Payees — CRUD under /v1/budgets/{budgetId}/payees
// ============================================================

func listPayeesHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/payees")
		defer span.End()

		payees, err := ledger.ListPayees(ctx, chi.URLParam(r, "budgetId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Payee]{Data: payees, Total: len(payees)})
	}
}

func createPayeeHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{budgetId}/payees")
		defer span.End()

		var payee domain.Payee
		if err := json.NewDecoder(r.Body).Decode(&payee); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payee.BudgetID = chi.URLParam(r, "budgetId")

		created, err := ledger.CreatePayee(ctx, &payee)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getPayeeHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/payees/{payeeId}")
		defer span.End()

		payee, err := ledger.GetPayee(ctx, chi.URLParam(r, "budgetId"), chi.URLParam(r, "payeeId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, payee)
	}
}

func updatePayeeHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{budgetId}/payees/{payeeId}")
		defer span.End()

		var payee domain.Payee
		if err := json.NewDecoder(r.Body).Decode(&payee); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payee.BudgetID = chi.URLParam(r, "budgetId")
		payee.ID = chi.URLParam(r, "payeeId")

		updated, err := ledger.UpdatePayee(ctx, &payee)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deletePayeeHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/budgets/{budgetId}/payees/{payeeId}")
		defer span.End()

		payeeID := chi.URLParam(r, "payeeId")
		if err := ledger.DeletePayee(ctx, chi.URLParam(r, "budgetId"), payeeID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "payee deleted", ID: payeeID})
	}
}
