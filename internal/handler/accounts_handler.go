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
// Accounts — CRUD under /v1/budgets/{budgetId}/accounts
// ============================================================

func listAccountsHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/accounts")
		defer span.End()

		accounts, err := ledger.ListAccounts(ctx, chi.URLParam(r, "budgetId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Account]{Data: accounts, Total: len(accounts)})
	}
}

func createAccountHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{budgetId}/accounts")
		defer span.End()

		var account domain.Account
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		account.BudgetID = chi.URLParam(r, "budgetId")

		created, err := ledger.CreateAccount(ctx, &account)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getAccountHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/accounts/{accountId}")
		defer span.End()

		account, err := ledger.GetAccount(ctx, chi.URLParam(r, "budgetId"), chi.URLParam(r, "accountId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func updateAccountHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{budgetId}/accounts/{accountId}")
		defer span.End()

		var account domain.Account
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		account.BudgetID = chi.URLParam(r, "budgetId")
		account.ID = chi.URLParam(r, "accountId")

		updated, err := ledger.UpdateAccount(ctx, &account)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteAccountHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/budgets/{budgetId}/accounts/{accountId}")
		defer span.End()

		accountID := chi.URLParam(r, "accountId")
		if err := ledger.DeleteAccount(ctx, chi.URLParam(r, "budgetId"), accountID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "account deleted", ID: accountID})
	}
}
