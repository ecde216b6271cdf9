// Package report renders budget reports for the terminal and as JSON.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/advice"
	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// Summary is a budget report together with the advice given for it.
type Summary struct {
	Profile model.Profile
	Advice  []string
	Report  model.BudgetReport
	Outcome advice.Outcome
}

// NewSummary runs the advice engine over a report.
func NewSummary(e *advice.Engine, r model.BudgetReport, profile model.Profile) Summary {
	return Summary{
		Report:  r,
		Profile: profile,
		Outcome: e.Decide(r),
		Advice:  e.Advise(r, profile),
	}
}

// Formatter renders summaries for terminal display.
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter with default styles.
func NewFormatter() *Formatter {
	return &Formatter{styles: NewStyles()}
}

// WithWidth returns a formatter whose boxes fit the given terminal width.
func (f *Formatter) WithWidth(width int) *Formatter {
	return &Formatter{styles: f.styles.WithWidth(width)}
}

// Format renders the full report: totals, the category table and the advice.
func (f *Formatter) Format(s Summary) string {
	sections := []string{
		f.formatHeader(s),
		f.formatTotals(s.Report),
	}

	if !s.Report.NoData {
		sections = append(sections, f.formatBreakdown(s.Report))
	}
	sections = append(sections, f.formatAdvice(s))

	if s.Report.Skipped > 0 {
		sections = append(sections, f.styles.Subtle.Render(
			fmt.Sprintf("Skipped %d line(s) without a valid amount.", s.Report.Skipped)))
	}

	return strings.Join(sections, "\n\n")
}

func (f *Formatter) formatHeader(s Summary) string {
	title := f.styles.Title.Render(cli.BudgetIcon + " Monthly Expense Analysis")

	meta := fmt.Sprintf("Report %s | Generated: %s", s.Report.ID, s.Report.GeneratedAt.Format(time.RFC3339))
	lines := []string{title, f.styles.Subtle.Render(meta)}

	if s.Profile != "" {
		lines = append(lines, fmt.Sprintf("User Profile: %s", s.Profile.Title()))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) formatTotals(r model.BudgetReport) string {
	lines := []string{
		fmt.Sprintf("Total Monthly Income:   %s", f.styles.Amount.Render(FormatAmount(r.Income))),
		fmt.Sprintf("Total Monthly Expenses: %s", f.styles.Amount.Render(FormatAmount(r.TotalExpenses))),
	}

	if r.IsDeficit() {
		lines = append(lines, f.styles.Error.Render(
			fmt.Sprintf("%s DEFICIT (Overspent): %s", cli.AlertIcon, FormatAmount(r.Surplus))))
	} else {
		lines = append(lines, f.styles.Success.Render(
			fmt.Sprintf("SURPLUS (Money Left for Savings): %s", FormatAmount(r.Surplus))))
	}

	return f.styles.RenderBox(strings.Join(lines, "\n"), "Totals", f.styles.Box)
}

func (f *Formatter) formatBreakdown(r model.BudgetReport) string {
	title := f.styles.Subtitle.Render(cli.ChartIcon + " Spending by Category")

	nameWidth := 25
	amountWidth := 15
	percentWidth := 14
	budgetWidth := 8

	header := fmt.Sprintf("%-*s | %*s | %*s | %*s",
		nameWidth, "Category",
		amountWidth, "Amount Spent",
		percentWidth, "% of Expenses",
		budgetWidth, "Budget")
	rows := []string{
		f.styles.TableHeader.Render(header),
		f.styles.Subtle.Render(strings.Repeat("─", len(header))),
	}

	over := make(map[string]bool, len(r.OverBudget))
	for _, o := range r.OverBudget {
		over[o.Category] = true
	}

	for _, row := range r.Breakdown {
		name := row.Category
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		percent := fmt.Sprintf("%*s", percentWidth, row.Percent.StringFixed(1)+"%")
		if over[row.Category] {
			percent = f.styles.OverBudget.Render(percent)
		}
		rows = append(rows, fmt.Sprintf("%-*s | %*s | %s | %*s",
			nameWidth, name,
			amountWidth, FormatAmount(row.Amount),
			percent,
			budgetWidth, row.BudgetPercent.String()+"%"))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) formatAdvice(s Summary) string {
	title := f.styles.Subtitle.Render("Budgetary Advice & Warnings")
	if len(s.Advice) == 0 {
		return title
	}

	lines := make([]string, 0, len(s.Advice))
	for i, msg := range s.Advice {
		style := f.styles.Normal
		switch {
		case i == 0:
			style = f.styles.ForOutcome(s.Outcome)
		case strings.HasPrefix(msg, "Overuse:"):
			style = f.styles.Warning
		}
		bullet := f.styles.Info.Render("•")
		lines = append(lines, fmt.Sprintf("%s %s", bullet, style.Render(msg)))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// FormatAmount renders an amount with two decimals and comma grouping, e.g.
// "-1,250.50".
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
