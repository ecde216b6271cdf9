package advice

import (
	"fmt"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

const (
	noDataMessage = "No valid expense data was entered, so there is nothing to analyze yet."

	wellManagedMessage = "Great job! Your spending within individual categories is well-managed."
)

func (e *Engine) decisionMessage(outcome Outcome, profile model.Profile) string {
	switch outcome {
	case OutcomeOverspend:
		return "Immediate Action: You are spending more than you earn. " +
			"Review the over-budget categories below; they are the first places to cut back."
	case OutcomeBoostSavings:
		return fmt.Sprintf("Boost Your Savings: Your spending is under control, but your savings are low. "+
			"As %s, aim to save at least %s%% of your income. "+
			"Look for small cuts in Entertainment or Shopping to increase your surplus.",
			profileNoun(profile), e.savingsTarget.Shift(2).String())
	default:
		return "Excellent Financial Health: You are living within your means and saving a good portion of your income. " +
			"Keep up the great work!"
	}
}

func overuseMessage(over model.OverBudget) string {
	return fmt.Sprintf("Overuse: You spent %s%% on '%s', which is higher than the recommended %s%%.",
		over.ActualPercent.StringFixed(1), over.Category, over.BudgetPercent.String())
}

func catchAllReminder(catchAll string) string {
	return fmt.Sprintf("Review '%s': a high share there means many expenses are not being tracked properly. "+
		"Try to be more descriptive in your log.", catchAll)
}

func profileNoun(profile model.Profile) string {
	switch profile {
	case model.ProfileStudent:
		return "a student"
	case model.ProfileSalaried:
		return "a salaried earner"
	case model.ProfileBusinessman:
		return "a business owner"
	case model.ProfileDailyWage:
		return "a daily wage earner"
	default:
		return "anyone"
	}
}

func profileTip(profile model.Profile) string {
	switch profile {
	case model.ProfileStudent:
		return "Student tip: Build the habit early. Set a weekly limit for eating out, " +
			"keep a small emergency fund in a separate account and start a recurring deposit, even a small one."
	case model.ProfileSalaried:
		return "Salaried tip: Follow the 50/30/20 rule (needs, wants, savings), " +
			"keep 3-6 months of essential expenses as an emergency fund and automate a transfer to savings on payday."
	case model.ProfileBusinessman, model.ProfileDailyWage:
		return "Variable income tip: Pay yourself a fixed monthly salary from a separate earnings account, " +
			"save aggressively in good months and keep business and personal expenses apart."
	default:
		return ""
	}
}
