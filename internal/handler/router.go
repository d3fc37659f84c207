package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// A nil authSvc disables bearer auth and the token endpoint.
func NewRouter(ledger *service.LedgerService, months *service.MonthService, authSvc *service.AuthService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(requestCounterMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(ledger, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/summary", metricsSummaryHandler(metrics))

		r.Route("/auth", func(r chi.Router) {
			if authSvc == nil {
				r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusServiceUnavailable, "auth not configured")
				}))
				return
			}
			r.Post("/token", issueTokenHandler(authSvc, logger))
		})

		r.Group(func(r chi.Router) {
			if authSvc != nil {
				r.Use(JWTAuthMiddleware(authSvc, logger))
			}

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", listBudgetsHandler(ledger, logger))
				r.Post("/", createBudgetHandler(ledger, logger))

				r.Route("/{budgetId}", func(r chi.Router) {
					r.Get("/", getBudgetHandler(ledger, logger))
					r.Put("/", updateBudgetHandler(ledger, logger))
					r.Delete("/", deleteBudgetHandler(ledger, logger))

					r.Route("/accounts", func(r chi.Router) {
						r.Get("/", listAccountsHandler(ledger, logger))
						r.Post("/", createAccountHandler(ledger, logger))
						r.Get("/{accountId}", getAccountHandler(ledger, logger))
						r.Put("/{accountId}", updateAccountHandler(ledger, logger))
						r.Delete("/{accountId}", deleteAccountHandler(ledger, logger))
					})

					r.Route("/payees", func(r chi.Router) {
						r.Get("/", listPayeesHandler(ledger, logger))
						r.Post("/", createPayeeHandler(ledger, logger))
						r.Get("/{payeeId}", getPayeeHandler(ledger, logger))
						r.Put("/{payeeId}", updatePayeeHandler(ledger, logger))
						r.Delete("/{payeeId}", deletePayeeHandler(ledger, logger))
					})

					r.Route("/categories", func(r chi.Router) {
						r.Get("/", listCategoriesHandler(ledger, logger))
						r.Post("/", createCategoryHandler(ledger, logger))
						r.Get("/{categoryId}", getCategoryHandler(ledger, logger))
						r.Put("/{categoryId}", updateCategoryHandler(ledger, logger))
						r.Delete("/{categoryId}", deleteCategoryHandler(ledger, logger))
					})

					r.Route("/transactions", func(r chi.Router) {
						r.Get("/", listTransactionsHandler(ledger, logger))
						r.Post("/", createTransactionHandler(ledger, logger))
						r.Get("/{transactionId}", getTransactionHandler(ledger, logger))
						r.Put("/{transactionId}", updateTransactionHandler(ledger, logger))
						r.Delete("/{transactionId}", deleteTransactionHandler(ledger, logger))
					})

					r.Route("/months", func(r chi.Router) {
						r.Get("/current", getCurrentMonthHandler(months, logger))
						r.Post("/current", postCurrentMonthHandler(months, logger))
					})
				})
			})
		})
	})

	return r
}

// requestCounterMiddleware feeds the requests_total counter behind the
// metrics summary endpoint.
func requestCounterMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= 400 {
				metrics.IncrRequest("error")
				return
			}
			metrics.IncrRequest("success")
		})
	}
}
