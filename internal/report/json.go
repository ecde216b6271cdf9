package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type jsonCategory struct {
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Percent       decimal.Decimal `json:"percent"`
	BudgetPercent decimal.Decimal `json:"budget_percent"`
	OverBudget    bool            `json:"over_budget"`
}

type jsonSummary struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	ID            string          `json:"id"`
	Profile       string          `json:"profile,omitempty"`
	Outcome       string          `json:"outcome"`
	CatchAll      string          `json:"catch_all"`
	Income        decimal.Decimal `json:"income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Surplus       decimal.Decimal `json:"surplus"`
	Categories    []jsonCategory  `json:"categories"`
	Advice        []string        `json:"advice"`
	RecordCount   int             `json:"record_count"`
	Skipped       int             `json:"skipped"`
	NoData        bool            `json:"no_data"`
}

// WriteJSON writes the summary as indented JSON. Amounts are encoded as
// strings; percentages are rounded to two places.
func WriteJSON(w io.Writer, s Summary) error {
	r := s.Report

	over := make(map[string]bool, len(r.OverBudget))
	for _, o := range r.OverBudget {
		over[o.Category] = true
	}

	categories := make([]jsonCategory, 0, len(r.Breakdown))
	for _, row := range r.Breakdown {
		categories = append(categories, jsonCategory{
			Category:      row.Category,
			Amount:        row.Amount,
			Percent:       row.Percent.Round(2),
			BudgetPercent: row.BudgetPercent,
			OverBudget:    over[row.Category],
		})
	}

	out := jsonSummary{
		GeneratedAt:   r.GeneratedAt,
		ID:            r.ID,
		Profile:       string(s.Profile),
		Outcome:       s.Outcome.String(),
		CatchAll:      r.CatchAll,
		Income:        r.Income,
		TotalExpenses: r.TotalExpenses,
		Surplus:       r.Surplus,
		Categories:    categories,
		Advice:        s.Advice,
		RecordCount:   r.RecordCount,
		Skipped:       r.Skipped,
		NoData:        r.NoData,
	}
	if out.Advice == nil {
		out.Advice = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
