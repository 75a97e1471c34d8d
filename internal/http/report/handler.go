package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/report"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly/{month}", h.monthly)
	r.Get("/monthly/{month}/export", h.exportMonthly)
	r.Get("/goals", h.goals)
}

func (h *Handler) loadMonthly(w http.ResponseWriter, r *http.Request) (*report.MonthlyReport, bool) {
	raw := chi.URLParam(r, "month")

	if res := validation.ValidateReportMonth(raw); !res.IsValid {
		httpx.Invalid(w, res.Message())
		return nil, false
	}

	month, _ := validation.SanitizeReportMonth(raw)

	rep, err := h.svc.Monthly(r.Context(), auth.UserID(r.Context()), month)
	if err != nil {
		httpx.Error(w, r, err)
		return nil, false
	}

	return rep, true
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.loadMonthly(w, r)
	if !ok {
		return
	}

	httpx.JSON(w, http.StatusOK, toMonthlyResponse(rep))
}

func (h *Handler) exportMonthly(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.loadMonthly(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteMonthlyCSV(&buf, rep); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.MonthlyCSVFilename(rep)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}

func (h *Handler) goals(w http.ResponseWriter, r *http.Request) {
	opts := report.GoalsOptions{
		IncludePredictions: validation.SanitizeGoalsReportQuery(r.URL.Query()),
	}

	goals, err := h.svc.Goals(r.Context(), auth.UserID(r.Context()), opts)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toGoalsResponse(goals))
}
