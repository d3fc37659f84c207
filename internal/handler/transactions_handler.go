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
// Transactions — CRUD under /v1/budgets/{budgetId}/transactions
// ============================================================

func listTransactionsHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/transactions")
		defer span.End()

		txs, err := ledger.ListTransactions(ctx, chi.URLParam(r, "budgetId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Transaction]{Data: txs, Total: len(txs)})
	}
}

func createTransactionHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{budgetId}/transactions")
		defer span.End()

		var req domain.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := ledger.CreateTransaction(ctx, chi.URLParam(r, "budgetId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getTransactionHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/transactions/{transactionId}")
		defer span.End()

		tx, err := ledger.GetTransaction(ctx, chi.URLParam(r, "budgetId"), chi.URLParam(r, "transactionId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func updateTransactionHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{budgetId}/transactions/{transactionId}")
		defer span.End()

		var tx domain.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tx.BudgetID = chi.URLParam(r, "budgetId")
		tx.ID = chi.URLParam(r, "transactionId")

		updated, err := ledger.UpdateTransaction(ctx, &tx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteTransactionHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/budgets/{budgetId}/transactions/{transactionId}")
		defer span.End()

		transactionID := chi.URLParam(r, "transactionId")
		if err := ledger.DeleteTransaction(ctx, chi.URLParam(r, "budgetId"), transactionID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "transaction deleted", ID: transactionID})
	}
}
