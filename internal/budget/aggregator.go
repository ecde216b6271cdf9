package budget

import (
	"slices"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregator builds budget reports from expense records.
type Aggregator struct {
	classifier *classification.Classifier
	now        func() time.Time
	newID      func() string
}

// NewAggregator creates an aggregator that classifies records with c.
func NewAggregator(c *classification.Classifier) *Aggregator {
	return &Aggregator{
		classifier: c,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// AggregateRaw parses raw ledger lines and aggregates the valid ones. The
// report's Skipped count includes the lines dropped while parsing.
func (a *Aggregator) AggregateRaw(raw []model.RawRecord, income decimal.Decimal) model.BudgetReport {
	records, skipped := ParseRecords(raw)
	report := a.Aggregate(records, income)
	report.Skipped += skipped
	return report
}

// Aggregate sums records per category and compares each category's share of
// spending with its budget. Records without a category, or with one the rule
// set does not declare, are classified first. Records with a non-positive
// amount are skipped. An empty record set yields a report flagged NoData.
func (a *Aggregator) Aggregate(records []model.ExpenseRecord, income decimal.Decimal) model.BudgetReport {
	set := a.classifier.Rules()
	declared := set.Rules()

	totals := make(model.CategoryTotals, len(declared))
	for _, r := range declared {
		totals[r.Name] = decimal.Zero
	}

	total := decimal.Zero
	counted, skipped := 0, 0
	for _, rec := range records {
		if !rec.Amount.IsPositive() {
			skipped++
			continue
		}
		category := rec.Category
		if set.Position(category) < 0 {
			category = a.classifier.Classify(rec.Description)
		}
		totals[category] = totals[category].Add(rec.Amount)
		total = total.Add(rec.Amount)
		counted++
	}

	report := model.BudgetReport{
		ID:            a.newID(),
		GeneratedAt:   a.now(),
		CatchAll:      set.CatchAll(),
		Income:        income,
		TotalExpenses: total,
		Surplus:       income.Sub(total),
		Totals:        totals,
		RecordCount:   counted,
		Skipped:       skipped,
		NoData:        counted == 0,
	}

	report.Breakdown = make([]model.CategoryTotal, 0, len(declared))
	for _, r := range declared {
		amount := totals[r.Name]
		actual := percentOf(amount, total)
		report.Breakdown = append(report.Breakdown, model.CategoryTotal{
			Category:      r.Name,
			Amount:        amount,
			Percent:       actual,
			BudgetPercent: r.BudgetPercent,
		})

		if r.Name == set.SavingsCategory() {
			continue
		}
		if actual.GreaterThan(r.BudgetPercent) {
			report.OverBudget = append(report.OverBudget, model.OverBudget{
				Category:      r.Name,
				ActualPercent: actual,
				BudgetPercent: r.BudgetPercent,
			})
		}
	}

	// Stable sort keeps declaration order for equal amounts.
	slices.SortStableFunc(report.Breakdown, func(x, y model.CategoryTotal) int {
		return y.Amount.Cmp(x.Amount)
	})

	return report
}

// percentOf returns 100*part/whole, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}
