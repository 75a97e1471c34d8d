package goal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
)

type goalResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	TargetAmount  json.Number `json:"target_amount"`
	CurrentAmount json.Number `json:"current_amount"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  httpx.Amount(g.TargetAmount),
		CurrentAmount: httpx.Amount(g.CurrentAmount),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

type contributionResponse struct {
	ID          uuid.UUID   `json:"id"`
	GoalID      uuid.UUID   `json:"goal_id"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toContributionResponse(c *goal.Contribution) contributionResponse {
	return contributionResponse{
		ID:          c.ID,
		GoalID:      c.GoalID,
		Amount:      httpx.Amount(c.Amount),
		Date:        c.Date.Format(time.DateOnly),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type predictionResponse struct {
	GoalID                  uuid.UUID   `json:"goal_id"`
	RemainingAmount         json.Number `json:"remaining_amount"`
	PredictedCompletionDate *string     `json:"predicted_completion_date"`
}

func toPredictionResponse(p *goal.Prediction) predictionResponse {
	resp := predictionResponse{
		GoalID:          p.GoalID,
		RemainingAmount: httpx.Amount(p.RemainingAmount),
	}

	if p.PredictedCompletionDate != nil {
		v := p.PredictedCompletionDate.Format(time.DateOnly)
		resp.PredictedCompletionDate = &v
	}

	return resp
}
