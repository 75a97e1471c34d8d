package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteMonthlyCSV writes the report as CSV: one row per expense followed by a
// blank line and the per-category totals.
func WriteMonthlyCSV(w io.Writer, r *MonthlyReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{"date", "category", "amount"}}

	for _, it := range r.Expenses {
		rows = append(rows, []string{it.Date.Format(time.DateOnly), it.Category, it.Amount.StringFixed(2)})
	}

	rows = append(rows, []string{}, []string{"category", "total"})

	for _, ct := range r.CategoryTotals {
		rows = append(rows, []string{ct.Category, ct.Total.StringFixed(2)})
	}

	rows = append(rows, []string{"TOTAL", r.Total.StringFixed(2)})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

// MonthlyCSVFilename is the attachment name used for the monthly export.
func MonthlyCSVFilename(r *MonthlyReport) string {
	return fmt.Sprintf("report_%s.csv", r.Month)
}
