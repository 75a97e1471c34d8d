package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/prediction", h.prediction)
	r.Get("/{id}/contributions", h.listContributions)
	r.Post("/{id}/contributions", h.addContribution)
	r.Delete("/{id}/contributions/{contributionID}", h.deleteContribution)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if res := validation.ValidateGetGoalsQuery(q); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	query, _ := validation.SanitizeGetGoalsQuery(q)

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

	if res := validation.ValidateCreateGoal(body); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	params, _ := validation.SanitizeCreateGoal(body)

	g, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	g, err := h.svc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(g))
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

	if res := validation.ValidateUpdateGoal(body); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	params, _ := validation.SanitizeUpdateGoal(body)

	g, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), id, params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(g))
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

func (h *Handler) prediction(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Predict(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toPredictionResponse(p))
}

func (h *Handler) listContributions(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	q := r.URL.Query()

	if res := validation.ValidateGetContributionsQuery(rawID, q); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	query, _ := validation.SanitizeGetContributionsQuery(rawID, q)

	page, err := h.svc.ListContributions(r.Context(), auth.UserID(r.Context()), query)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, httpx.NewPage(page, toContributionResponse))
}

func (h *Handler) addContribution(w http.ResponseWriter, r *http.Request) {
	goalID, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	body, err := httpx.DecodeBody(w, r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if res := validation.ValidateCreateContribution(body); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return
	}

	params, _ := validation.SanitizeCreateContribution(body)

	c, err := h.svc.AddContribution(r.Context(), auth.UserID(r.Context()), goalID, params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toContributionResponse(c))
}

func (h *Handler) deleteContribution(w http.ResponseWriter, r *http.Request) {
	goalID, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	id, ok := httpx.PathID(w, r, "contributionID")
	if !ok {
		return
	}

	if err := h.svc.DeleteContribution(r.Context(), auth.UserID(r.Context()), goalID, id); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
