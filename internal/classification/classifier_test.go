package classification

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(rules.Default())

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "rent goes to housing",
			description: "Paid rent for June",
			want:        rules.HousingAndBills,
		},
		{
			name:        "unknown description goes to catch-all",
			description: "Bought a random gadget",
			want:        rules.Miscellaneous,
		},
		{
			name:        "case insensitive",
			description: "NETFLIX SUBSCRIPTION",
			want:        rules.Entertainment,
		},
		{
			name:        "substring match inside a word",
			description: "Coffeehouse visit",
			want:        rules.Food,
		},
		{
			name:        "empty description",
			description: "",
			want:        rules.Miscellaneous,
		},
		{
			name:        "whitespace only description",
			description: "   \t ",
			want:        rules.Miscellaneous,
		},
		{
			name:        "earlier rule wins on overlap",
			description: "Zomato order and phone bill",
			want:        rules.HousingAndBills,
		},
		{
			name:        "savings keyword",
			description: "Monthly SIP",
			want:        rules.SavingsAndGoals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.description))
		})
	}
}

func TestClassifier_EveryKeywordSelectsItsCategory(t *testing.T) {
	set := rules.Default()
	c := NewClassifier(set)

	for _, r := range set.Rules() {
		for _, kw := range r.Keywords {
			got := c.Classify("xx " + kw + " xx")
			// A keyword can contain an earlier category's keyword, never a later one.
			want, ok := set.Match("xx " + kw + " xx")
			require.True(t, ok)
			assert.Equal(t, want, got, "keyword %q", kw)
			assert.LessOrEqual(t, set.Position(got), set.Position(r.Name), "keyword %q", kw)
		}
	}
}

func TestClassifier_TieBreakFollowsDeclarationOrder(t *testing.T) {
	first := rules.MustNew([]model.CategoryRule{
		{Name: "A", Keywords: []string{"shared"}, BudgetPercent: decimal.NewFromInt(50)},
		{Name: "B", Keywords: []string{"shared", "only-b"}, BudgetPercent: decimal.NewFromInt(50)},
		{Name: "Rest"},
	})
	second := rules.MustNew([]model.CategoryRule{
		{Name: "B", Keywords: []string{"shared", "only-b"}, BudgetPercent: decimal.NewFromInt(50)},
		{Name: "A", Keywords: []string{"shared"}, BudgetPercent: decimal.NewFromInt(50)},
		{Name: "Rest"},
	})

	assert.Equal(t, "A", NewClassifier(first).Classify("a shared thing"))
	assert.Equal(t, "B", NewClassifier(second).Classify("a shared thing"))
	assert.Equal(t, "B", NewClassifier(first).Classify("only-b"))
	assert.Equal(t, "Rest", NewClassifier(first).Classify("nothing here"))
}

func TestClassifier_ClassifyRecords(t *testing.T) {
	var progressed atomic.Int64
	c := NewClassifier(rules.Default(),
		WithWorkers(3),
		WithProgress(func(n int) { progressed.Add(int64(n)) }),
	)

	records := make([]model.ExpenseRecord, 0, 50)
	for i := 0; i < 50; i++ {
		desc := fmt.Sprintf("gadget %d", i)
		if i%2 == 0 {
			desc = fmt.Sprintf("uber ride %d", i)
		}
		records = append(records, model.ExpenseRecord{
			Description: desc,
			Amount:      decimal.NewFromInt(int64(i + 1)),
		})
	}
	records[1].Category = rules.Food

	got, err := c.ClassifyRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	for i, r := range got {
		assert.Equal(t, records[i].Description, r.Description)
		assert.True(t, records[i].Amount.Equal(r.Amount))
		switch {
		case i == 1:
			assert.Equal(t, rules.Food, r.Category, "preassigned category is kept")
		case i%2 == 0:
			assert.Equal(t, rules.Transportation, r.Category)
		default:
			assert.Equal(t, rules.Miscellaneous, r.Category)
		}
	}
	assert.Empty(t, records[0].Category, "input records are not modified")
	assert.Equal(t, int64(len(records)), progressed.Load())
}

func TestClassifier_ClassifyRecordsCanceled(t *testing.T) {
	c := NewClassifier(rules.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ClassifyRecords(ctx, []model.ExpenseRecord{{Description: "rent"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifier_ClassifyRecordsEmpty(t *testing.T) {
	c := NewClassifier(rules.Default())

	got, err := c.ClassifyRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
