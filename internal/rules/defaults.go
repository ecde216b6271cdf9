package rules

import (
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// Default category names.
const (
	HousingAndBills = "Housing & Bills"
	Food            = "Food"
	Transportation  = "Transportation"
	Entertainment   = "Entertainment"
	PersonalCare    = "Personal Care & Shopping"
	SavingsAndGoals = "Savings & Goals"
	Miscellaneous   = "Miscellaneous"
)

// DefaultCategories returns the built-in categories. Housing & Bills must stay
// ahead of Food: a line such as "gas bill, restaurant" is a bill.
func DefaultCategories() []model.CategoryRule {
	return []model.CategoryRule{
		{
			Name:          HousingAndBills,
			Keywords:      []string{"rent", "bill", "electricity", "internet", "water", "phone", "gas"},
			BudgetPercent: decimal.NewFromInt(35),
		},
		{
			Name:          Food,
			Keywords:      []string{"cook", "grocery", "food", "restaurant", "swiggy", "zomato", "meal", "coffee", "snacks"},
			BudgetPercent: decimal.NewFromInt(20),
		},
		{
			Name:          Transportation,
			Keywords:      []string{"travel", "uber", "ola", "taxi", "bus", "train", "fuel", "petrol"},
			BudgetPercent: decimal.NewFromInt(10),
		},
		{
			Name:          Entertainment,
			Keywords:      []string{"movie", "concert", "tickets", "netflix", "spotify", "hobby", "fun"},
			BudgetPercent: decimal.NewFromInt(10),
		},
		{
			Name:          PersonalCare,
			Keywords:      []string{"shopping", "clothes", "salon", "gym", "health", "pharmacy"},
			BudgetPercent: decimal.NewFromInt(10),
		},
		{
			Name:          SavingsAndGoals,
			Keywords:      []string{"saving", "investment", "sip", "goal", "deposit"},
			BudgetPercent: decimal.NewFromInt(15),
		},
		{
			Name:          Miscellaneous,
			BudgetPercent: decimal.Zero,
		},
	}
}

// Default returns the built-in rule set with Savings & Goals as the savings
// category.
func Default() *Set {
	return MustNew(DefaultCategories(), WithSavingsCategory(SavingsAndGoals))
}
