// Package budget aggregates classified expenses into a budget report.
package budget

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a positive amount such as "1,250.50". Grouping commas
// and surrounding space are ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", common.ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q is not positive", common.ErrInvalidAmount, s)
	}
	return amount, nil
}

// ParseRecords validates raw ledger lines. Lines whose amount is missing,
// non-numeric or not positive are dropped and counted; this is never an error.
func ParseRecords(raw []model.RawRecord) ([]model.ExpenseRecord, int) {
	records := make([]model.ExpenseRecord, 0, len(raw))
	skipped := 0

	for _, r := range raw {
		amount, err := ParseAmount(r.Amount)
		if err != nil {
			skipped++
			common.LogDebug("skipping ledger line", common.Fields{
				"description": r.Description,
				"amount":      r.Amount,
				"error":       err,
			})
			continue
		}
		records = append(records, model.ExpenseRecord{
			Description: strings.TrimSpace(r.Description),
			Amount:      amount,
		})
	}

	if skipped > 0 {
		slog.Info("records skipped", "count", skipped, "kept", len(records))
	}
	return records, skipped
}
