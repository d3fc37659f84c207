package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

// ============================================================
// Operational endpoints
// ============================================================

func healthzHandler(ledger *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "budgeteer-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if ledger != nil {
			start := time.Now()
			_, err := ledger.ListBudgets(ctx)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				logger.Warn("healthz: store check failed", zap.Error(err))
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func metricsSummaryHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetSummarySnapshot())
	}
}
