package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"spendwise/internal/category"
	"spendwise/internal/expense"
	"spendwise/internal/insight"
	"spendwise/internal/reports"
	"spendwise/internal/settings"
	"spendwise/internal/transport/middleware"
	"spendwise/internal/transport/swagger"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes mounts the API surface the presentation layer consumes.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	connectivity ConnectivityChecker,
	expenseHandler *expense.Handler,
	reportsHandler *reports.Handler,
	settingsHandler *settings.Handler,
	categoryHandler *category.Handler,
	insightHandler *insight.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db, connectivity)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)
		r.Get("/status", healthHandler.statusHandler)

		if categoryHandler != nil {
			r.Get("/categories", categoryHandler.GetCategories)
		}

		if expenseHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/", expenseHandler.ListExpenses)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
			})
		}

		if reportsHandler != nil {
			r.Route("/reports", func(rr chi.Router) {
				rr.Get("/today", reportsHandler.GetToday)
				rr.Get("/range", reportsHandler.GetRange)
				rr.Get("/monthly", reportsHandler.GetMonthly)
			})
		}

		if settingsHandler != nil {
			r.Route("/settings", func(sr chi.Router) {
				sr.Get("/", settingsHandler.GetSettings)
				sr.Patch("/", settingsHandler.UpdateSettings)
			})
		}

		if insightHandler != nil {
			r.Route("/insights", func(ir chi.Router) {
				ir.Get("/", insightHandler.GetInsight)
				ir.Post("/analyze", insightHandler.RequestAnalysis)
			})
		}
	})
}
