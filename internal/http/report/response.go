package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/report"
)

type lineItemResponse struct {
	Date     string      `json:"date"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
}

type categoryTotalResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

type monthlyResponse struct {
	Month          string                  `json:"month"`
	Expenses       []lineItemResponse      `json:"expenses"`
	CategoryTotals []categoryTotalResponse `json:"category_totals"`
	Total          json.Number             `json:"total"`
}

func toMonthlyResponse(r *report.MonthlyReport) monthlyResponse {
	items := make([]lineItemResponse, len(r.Expenses))
	for i, it := range r.Expenses {
		items[i] = lineItemResponse{
			Date:     it.Date.Format(time.DateOnly),
			Amount:   httpx.Amount(it.Amount),
			Category: it.Category,
		}
	}

	totals := make([]categoryTotalResponse, len(r.CategoryTotals))
	for i, ct := range r.CategoryTotals {
		totals[i] = categoryTotalResponse{Category: ct.Category, Total: httpx.Amount(ct.Total)}
	}

	return monthlyResponse{
		Month:          r.Month.String(),
		Expenses:       items,
		CategoryTotals: totals,
		Total:          httpx.Amount(r.Total),
	}
}

type goalProgressResponse struct {
	ID                      uuid.UUID   `json:"id"`
	Name                    string      `json:"name"`
	TargetAmount            json.Number `json:"target_amount"`
	CurrentAmount           json.Number `json:"current_amount"`
	ProgressPercentage      json.Number `json:"progress_percentage"`
	RemainingAmount         json.Number `json:"remaining_amount"`
	PredictedCompletionDate *string     `json:"predicted_completion_date,omitempty"`
}

type goalsResponse struct {
	Goals []goalProgressResponse `json:"goals"`
}

func toGoalsResponse(goals []report.GoalProgress) goalsResponse {
	out := make([]goalProgressResponse, len(goals))

	for i, g := range goals {
		out[i] = goalProgressResponse{
			ID:                 g.ID,
			Name:               g.Name,
			TargetAmount:       httpx.Amount(g.TargetAmount),
			CurrentAmount:      httpx.Amount(g.CurrentAmount),
			ProgressPercentage: httpx.Amount(g.ProgressPercentage),
			RemainingAmount:    httpx.Amount(g.RemainingAmount),
		}

		if g.PredictedCompletionDate != nil {
			v := g.PredictedCompletionDate.Format(time.DateOnly)
			out[i].PredictedCompletionDate = &v
		}
	}

	return goalsResponse{Goals: out}
}
