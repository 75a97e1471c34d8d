package income

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
)

type incomeResponse struct {
	ID          uuid.UUID   `json:"id"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description,omitempty"`
	Source      string      `json:"source,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toResponse(i *income.Income) incomeResponse {
	return incomeResponse{
		ID:          i.ID,
		Amount:      httpx.Amount(i.Amount),
		Date:        i.Date.Format(time.DateOnly),
		Description: i.Description,
		Source:      i.Source,
		CreatedAt:   i.CreatedAt,
	}
}
