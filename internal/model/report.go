package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotals maps every declared category to its summed spend.
type CategoryTotals map[string]decimal.Decimal

// Sum adds up all category totals.
func (c CategoryTotals) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range c {
		total = total.Add(amount)
	}
	return total
}

// CategoryTotal is one row of the spending breakdown.
type CategoryTotal struct {
	Category      string
	Amount        decimal.Decimal
	Percent       decimal.Decimal // share of total expenses, 0 when there are none
	BudgetPercent decimal.Decimal
}

// OverBudget describes a category whose share of spending exceeds its budget.
type OverBudget struct {
	Category      string
	ActualPercent decimal.Decimal
	BudgetPercent decimal.Decimal
}

// BudgetReport is the result of one aggregation run.
type BudgetReport struct {
	GeneratedAt   time.Time
	Totals        CategoryTotals
	ID            string
	CatchAll      string
	Breakdown     []CategoryTotal // spent descending, ties in declaration order
	OverBudget    []OverBudget    // declaration order
	Income        decimal.Decimal
	TotalExpenses decimal.Decimal
	Surplus       decimal.Decimal // negative for a deficit
	RecordCount   int
	Skipped       int
	NoData        bool
}

// IsDeficit reports whether expenses exceed income.
func (r BudgetReport) IsDeficit() bool {
	return r.Surplus.IsNegative()
}
