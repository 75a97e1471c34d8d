package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

// PredictionWindowDays is the trailing window contribution velocity is
// measured over.
const PredictionWindowDays = 30

// Predict extrapolates the completion date of a goal from the average daily
// amount contributed over the trailing window. It is a straight-line
// estimate: lump sums outside the window and seasonality are ignored.
//
// The window is the last PredictionWindowDays calendar days ending today,
// today included, so the day PredictionWindowDays ago falls outside it.
//
// It returns nil when the goal is already reached, when fewer than two
// contributions exist, or when nothing was contributed within the window.
func Predict(target, current decimal.Decimal, contributions []*Contribution, now time.Time) *time.Time {
	if current.GreaterThanOrEqual(target) {
		return nil
	}

	if len(contributions) < 2 {
		return nil
	}

	today := dateOnly(now)
	// Exclusive lower bound.
	windowStart := today.AddDate(0, 0, -PredictionWindowDays)

	recent := decimal.Zero

	for _, c := range contributions {
		d := dateOnly(c.Date)
		if !d.After(windowStart) || d.After(today) {
			continue
		}

		recent = recent.Add(c.Amount)
	}

	if !recent.IsPositive() {
		return nil
	}

	// remaining / (recent / window) without the intermediate rounding of the rate.
	remaining := target.Sub(current)
	days := remaining.Mul(decimal.NewFromInt(PredictionWindowDays)).Div(recent).Ceil().IntPart()

	predicted := today.AddDate(0, 0, int(days))

	return &predicted
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
