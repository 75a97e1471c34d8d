// Package httpx holds the response and request helpers shared by handlers.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/apperr"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

// MaxBodyBytes caps JSON command bodies.
const MaxBodyBytes = 1 << 20

var errInvalidBody = apperr.Invalid("request body must be a JSON object")

type errorResponse struct {
	Message string `json:"message"`
}

type paginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type PageResponse[R any] struct {
	Data       []R                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// NewPage converts a page of domain values into its JSON envelope.
func NewPage[T, R any](p listing.Page[T], convert func(T) R) PageResponse[R] {
	data := make([]R, len(p.Data))
	for i, v := range p.Data {
		data[i] = convert(v)
	}

	return PageResponse[R]{
		Data: data,
		Pagination: paginationResponse{
			Page:  p.Pagination.Page,
			Limit: p.Pagination.Limit,
			Total: p.Pagination.Total,
		},
	}
}

// Amount renders money as a JSON number with two decimal places.
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Invalid(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Message: msg})
}

// Error writes err using the status of its apperr kind. Anything unclassified
// is logged and answered with a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		JSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})

		return
	}

	status := http.StatusInternalServerError

	switch ae.Kind {
	case apperr.KindInvalid:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusUnprocessableEntity
	}

	JSON(w, status, errorResponse{Message: ae.Message})
}

// DecodeBody reads a JSON object keeping numbers as json.Number so amounts
// reach validation without a float round trip.
func DecodeBody(w http.ResponseWriter, r *http.Request) (validation.Body, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.Invalid("request body too large")
		}

		return nil, errInvalidBody
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, errInvalidBody
	}

	if dec.More() {
		return nil, errInvalidBody
	}

	return validation.Body(body), nil
}

// PathID reads a UUID path parameter, answering 400 when it is malformed.
func PathID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, key)

	if res := validation.ValidateID(raw); !res.IsValid {
		Invalid(w, res.Message())
		return uuid.Nil, false
	}

	id, ok := validation.SanitizeID(raw)
	if !ok {
		Invalid(w, "invalid id")
	}

	return id, ok
}
