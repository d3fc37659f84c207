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
// Month view — GET|POST /v1/budgets/{budgetId}/months/current
// ============================================================

func getCurrentMonthHandler(months *service.MonthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/budgets/{budgetId}/months/current")
		defer span.End()

		budgetID := chi.URLParam(r, "budgetId")
		span.SetAttributes(attribute.String("budget.id", budgetID))

		view, err := months.ComputeMonthBudget(ctx, budgetID, nil)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// postCurrentMonthHandler recomputes the view with a caller-supplied goals
// mapping instead of the configured one.
func postCurrentMonthHandler(months *service.MonthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/budgets/{budgetId}/months/current")
		defer span.End()

		budgetID := chi.URLParam(r, "budgetId")
		span.SetAttributes(attribute.String("budget.id", budgetID))

		var req struct {
			Goals map[string]domain.Goal `json:"goals"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Goals == nil {
			req.Goals = map[string]domain.Goal{}
		}

		view, err := months.ComputeMonthBudget(ctx, budgetID, req.Goals)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
