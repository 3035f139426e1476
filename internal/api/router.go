// Package api serves the calculators and the workspace over HTTP.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter wires every route under /api/v1.
func NewRouter(h *Handler, allowedOrigins []string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/valuations", func(r chi.Router) {
			r.Post("/dcf", h.DCF)
			r.Post("/cca", h.CCA)
			r.Post("/asset", h.Asset)
			r.Post("/ddm", h.DDM)
			r.Post("/weighted", h.Weighted)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Get("/summary", h.WorkspaceBudget)
			r.Post("/summary", h.BudgetSummary)
			r.Post("/costs", h.AddCost)
			r.Post("/revenues", h.AddRevenue)
		})

		r.Post("/payroll/calculate", h.Payroll)
		r.Post("/tax/summary", h.TaxSummary)

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", h.ListLoans)
			r.Post("/", h.CreateLoan)
			r.Get("/portfolio", h.LoanPortfolio)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetLoan)
				r.Delete("/", h.DeleteLoan)
				r.Post("/repayments", h.RepayLoan)
				r.Post("/restore", h.RestoreLoan)
				r.Post("/default", h.DefaultLoan)
			})
		})

		r.Post("/exports", h.Export)
	})

	return r
}
