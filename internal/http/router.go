package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/budget"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/category"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/income"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/report"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type Handlers struct {
	Categories *category.Handler
	Expenses   *expense.Handler
	Incomes    *income.Handler
	Goals      *goal.Handler
	Budget     *budget.Handler
	Reports    *report.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/incomes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Incomes.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/budget", h.Budget.Routes)
		r.Route("/reports", h.Reports.Routes)
	})

	return router
}
