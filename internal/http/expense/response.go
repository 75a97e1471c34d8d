package expense

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/httpx"
)

type expenseResponse struct {
	ID           uuid.UUID   `json:"id"`
	Amount       json.Number `json:"amount"`
	Date         string      `json:"date"`
	CategoryID   uuid.UUID   `json:"category_id"`
	CategoryName string      `json:"category_name,omitempty"`
	Description  string      `json:"description,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		Amount:       httpx.Amount(e.Amount),
		Date:         e.Date.Format(time.DateOnly),
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
}
