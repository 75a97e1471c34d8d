package budget

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/skarbonka/internal/budget"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.monthly)
}

type shareResponse struct {
	CategoryName string      `json:"category_name"`
	Amount       json.Number `json:"amount"`
	Percentage   json.Number `json:"percentage"`
}

type budgetResponse struct {
	Month             string          `json:"month"`
	TotalIncome       json.Number     `json:"total_income"`
	TotalExpenses     json.Number     `json:"total_expenses"`
	Remaining         json.Number     `json:"remaining"`
	CategoryBreakdown []shareResponse `json:"category_breakdown"`
}

func toResponse(b *budget.MonthlyBudget) budgetResponse {
	shares := make([]shareResponse, len(b.CategoryBreakdown))
	for i, s := range b.CategoryBreakdown {
		shares[i] = shareResponse{
			CategoryName: s.CategoryName,
			Amount:       httpx.Amount(s.Amount),
			Percentage:   httpx.Amount(s.Percentage),
		}
	}

	return budgetResponse{
		Month:             b.Month.String(),
		TotalIncome:       httpx.Amount(b.TotalIncome),
		TotalExpenses:     httpx.Amount(b.TotalExpenses),
		Remaining:         httpx.Amount(b.Remaining),
		CategoryBreakdown: shares,
	}
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if res := validation.ValidateBudgetQuery(q); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	month, _ := validation.SanitizeBudgetQuery(q)

	b, err := h.svc.MonthlyBudget(r.Context(), auth.UserID(r.Context()), month)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(b))
}
