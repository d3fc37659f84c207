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
// Categories — CRUD under /v1/budgets/{budgetId}/categories
// ============================================================

func listCategoriesHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/categories")
		defer span.End()

		categories, err := ledger.ListCategories(ctx, chi.URLParam(r, "budgetId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Category]{Data: categories, Total: len(categories)})
	}
}

func createCategoryHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{budgetId}/categories")
		defer span.End()

		var category domain.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		category.BudgetID = chi.URLParam(r, "budgetId")

		created, err := ledger.CreateCategory(ctx, &category)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getCategoryHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/categories/{categoryId}")
		defer span.End()

		category, err := ledger.GetCategory(ctx, chi.URLParam(r, "budgetId"), chi.URLParam(r, "categoryId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func updateCategoryHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/budgets/{budgetId}/categories/{categoryId}")
		defer span.End()

		var category domain.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		category.BudgetID = chi.URLParam(r, "budgetId")
		category.ID = chi.URLParam(r, "categoryId")

		updated, err := ledger.UpdateCategory(ctx, &category)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCategoryHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/budgets/{budgetId}/categories/{categoryId}")
		defer span.End()

		categoryID := chi.URLParam(r, "categoryId")
		if err := ledger.DeleteCategory(ctx, chi.URLParam(r, "budgetId"), categoryID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "category deleted", ID: categoryID})
	}
}
