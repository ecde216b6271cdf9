// Package advice turns a budget report into ordered recommendations.
package advice

import (
	"fmt"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultSavingsTarget is the share of income a healthy budget leaves over.
var DefaultSavingsTarget = decimal.RequireFromString("0.15")

// Outcome is the decision taken for a report.
type Outcome int

// Possible outcomes, checked in this order.
const (
	OutcomeNoData Outcome = iota
	OutcomeOverspend
	OutcomeBoostSavings
	OutcomeHealthy
)

// String returns the outcome name used in logs and JSON output.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoData:
		return "no_data"
	case OutcomeOverspend:
		return "overspend"
	case OutcomeBoostSavings:
		return "boost_savings"
	case OutcomeHealthy:
		return "healthy"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Engine evaluates the advice rules. It has no mutable state.
type Engine struct {
	savingsTarget decimal.Decimal
}

// Option configures an Engine.
type Option func(*Engine)

// WithSavingsTarget sets the fraction of income, between 0 and 1, below
// which the surplus counts as too low. Values outside that range are ignored.
func WithSavingsTarget(target decimal.Decimal) Option {
	return func(e *Engine) {
		if target.IsNegative() || target.GreaterThan(decimal.NewFromInt(1)) {
			return
		}
		e.savingsTarget = target
	}
}

// NewEngine creates an advice engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{savingsTarget: DefaultSavingsTarget}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SavingsTarget returns the configured savings target fraction.
func (e *Engine) SavingsTarget() decimal.Decimal {
	return e.savingsTarget
}

// Decide picks the outcome for a report. Overspending short-circuits the
// savings check. The profile plays no part in the decision.
func (e *Engine) Decide(report model.BudgetReport) Outcome {
	switch {
	case report.NoData:
		return OutcomeNoData
	case report.TotalExpenses.GreaterThan(report.Income):
		return OutcomeOverspend
	case report.Surplus.LessThan(report.Income.Mul(e.savingsTarget)):
		return OutcomeBoostSavings
	default:
		return OutcomeHealthy
	}
}

// Advise returns the recommendations for a report: the decision message, the
// per-category warnings, a tip for the profile and a reminder about the
// catch-all category. A report without data gets a single message.
func (e *Engine) Advise(report model.BudgetReport, profile model.Profile) []string {
	outcome := e.Decide(report)
	if outcome == OutcomeNoData {
		return []string{noDataMessage}
	}

	messages := make([]string, 0, len(report.OverBudget)+3)
	messages = append(messages, e.decisionMessage(outcome, profile))

	for _, over := range report.OverBudget {
		messages = append(messages, overuseMessage(over))
	}
	if len(report.OverBudget) == 0 && report.TotalExpenses.IsPositive() {
		messages = append(messages, wellManagedMessage)
	}

	if tip := profileTip(profile); tip != "" {
		messages = append(messages, tip)
	}
	messages = append(messages, catchAllReminder(report.CatchAll))

	return messages
}
