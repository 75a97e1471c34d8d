package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if res := validation.ValidateGetExpensesQuery(q); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	query, _ := validation.SanitizeGetExpensesQuery(q)

	page, err := h.svc.List(r.Context(), auth.UserID(r.Context()), query)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, httpx.NewPage(page, toResponse))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.DecodeBody(w, r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if res := validation.ValidateCreateExpense(body); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	params, _ := validation.SanitizeCreateExpense(body)

	e, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	body, err := httpx.DecodeBody(w, r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if res := validation.ValidateUpdateExpense(body); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	params, _ := validation.SanitizeUpdateExpense(body)

	e, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), id, params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
