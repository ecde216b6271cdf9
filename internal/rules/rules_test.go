package rules

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(name string, budget int64, keywords ...string) model.CategoryRule {
	return model.CategoryRule{
		Name:          name,
		Keywords:      keywords,
		BudgetPercent: decimal.NewFromInt(budget),
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		wantErr    error
		name       string
		categories []model.CategoryRule
		opts       []Option
	}{
		{
			name: "valid rules",
			categories: []model.CategoryRule{
				rule("Food", 20, "food"),
				rule("Other", 0),
			},
		},
		{
			name:    "no categories",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "duplicate names",
			categories: []model.CategoryRule{
				rule("Food", 20, "food"),
				rule("Food", 10, "meal"),
				rule("Other", 0),
			},
			wantErr: common.ErrDuplicateCategory,
		},
		{
			name: "duplicate names after trimming",
			categories: []model.CategoryRule{
				rule("Food", 20, "food"),
				rule(" Food ", 10, "meal"),
				rule("Other", 0),
			},
			wantErr: common.ErrDuplicateCategory,
		},
		{
			name: "missing catch-all",
			categories: []model.CategoryRule{
				rule("Food", 20, "food"),
			},
			wantErr: common.ErrMissingCatchAll,
		},
		{
			name: "two catch-alls",
			categories: []model.CategoryRule{
				rule("Other", 0),
				rule("Rest", 0),
			},
			wantErr: common.ErrMultipleCatchAll,
		},
		{
			name: "empty name",
			categories: []model.CategoryRule{
				rule("  ", 20, "food"),
				rule("Other", 0),
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "budget above 100",
			categories: []model.CategoryRule{
				rule("Food", 101, "food"),
				rule("Other", 0),
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "negative budget",
			categories: []model.CategoryRule{
				rule("Food", -1, "food"),
				rule("Other", 0),
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "blank keyword",
			categories: []model.CategoryRule{
				rule("Food", 20, "food", "  "),
				rule("Other", 0),
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "unknown savings category",
			categories: []model.CategoryRule{
				rule("Food", 20, "food"),
				rule("Other", 0),
			},
			opts:    []Option{WithSavingsCategory("Savings")},
			wantErr: common.ErrUnknownSavingsCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := New(tt.categories, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, set)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.categories), set.Len())
		})
	}
}

func TestNew_NormalizesKeywords(t *testing.T) {
	set, err := New([]model.CategoryRule{
		rule("Food", 20, " Coffee ", "SWIGGY"),
		rule("Other", 0),
	})
	require.NoError(t, err)

	food, ok := set.Lookup("Food")
	require.True(t, ok)
	assert.Equal(t, []string{"coffee", "swiggy"}, food.Keywords)
}

func TestSet_IsImmutable(t *testing.T) {
	input := []model.CategoryRule{
		rule("Food", 20, "food"),
		rule("Other", 0),
	}
	set, err := New(input)
	require.NoError(t, err)

	input[0].Keywords[0] = "changed"
	input[0].Name = "Changed"

	got := set.Rules()
	got[0].Keywords[0] = "mutated"

	food, ok := set.Lookup("Food")
	require.True(t, ok)
	assert.Equal(t, []string{"food"}, food.Keywords)
}

func TestSet_Accessors(t *testing.T) {
	set := Default()

	assert.Equal(t, Miscellaneous, set.CatchAll())
	assert.Equal(t, SavingsAndGoals, set.SavingsCategory())
	assert.Equal(t, []string{
		HousingAndBills, Food, Transportation, Entertainment,
		PersonalCare, SavingsAndGoals, Miscellaneous,
	}, set.Names())
	assert.Equal(t, 0, set.Position(HousingAndBills))
	assert.Equal(t, 6, set.Position(Miscellaneous))
	assert.Equal(t, -1, set.Position("Nope"))

	_, ok := set.Lookup("Nope")
	assert.False(t, ok)
}

func TestSet_Match(t *testing.T) {
	set := Default()

	name, ok := set.Match("paid rent for june")
	assert.True(t, ok)
	assert.Equal(t, HousingAndBills, name)

	_, ok = set.Match("bought a random gadget")
	assert.False(t, ok)

	// Declared order decides between categories.
	name, ok = set.Match("gas bill, restaurant")
	assert.True(t, ok)
	assert.Equal(t, HousingAndBills, name)
}

func TestDefault_BudgetShares(t *testing.T) {
	set := Default()

	total := decimal.Zero
	for _, r := range set.Rules() {
		total = total.Add(r.BudgetPercent)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "default shares add up to 100, got %s", total)
}

func TestLoad(t *testing.T) {
	const doc = `
catch_all: Other
savings_category: Savings
categories:
  - name: Bills
    keywords: [Rent, electricity]
    budget_percent: 40
  - name: Food
    keywords: [food]
    budget_percent: 25.5
  - name: Savings
    keywords: [sip]
    budget_percent: 15
`
	set, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Bills", "Food", "Savings", "Other"}, set.Names())
	assert.Equal(t, "Other", set.CatchAll())
	assert.Equal(t, "Savings", set.SavingsCategory())

	bills, ok := set.Lookup("Bills")
	require.True(t, ok)
	assert.Equal(t, []string{"rent", "electricity"}, bills.Keywords)

	food, ok := set.Lookup("Food")
	require.True(t, ok)
	assert.True(t, food.BudgetPercent.Equal(decimal.RequireFromString("25.5")))
}

func TestLoad_CatchAllListedExplicitly(t *testing.T) {
	const doc = `
catch_all: Other
categories:
  - name: Other
    budget_percent: 5
  - name: Food
    keywords: [food]
    budget_percent: 20
`
	set, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Other", "Food"}, set.Names())

	other, ok := set.Lookup("Other")
	require.True(t, ok)
	assert.True(t, other.BudgetPercent.Equal(decimal.NewFromInt(5)))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		doc     string
	}{
		{
			name:    "empty document",
			doc:     "",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "unknown field",
			doc:     "categorys: []\n",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "catch-all with keywords",
			doc: `
catch_all: Other
categories:
  - name: Other
    keywords: [misc]
`,
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "no catch-all",
			doc: `
categories:
  - name: Food
    keywords: [food]
`,
			wantErr: common.ErrMissingCatchAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catch_all: Misc
categories:
  - name: Travel
    keywords: [uber]
    budget_percent: 10
`), 0o600))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Travel", "Misc"}, set.Names())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEncode_LoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Default()))
	assert.Contains(t, buf.String(), "catch_all: Miscellaneous")

	set, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, Default().Names(), set.Names())
	assert.Equal(t, SavingsAndGoals, set.SavingsCategory())
	assert.Equal(t, Miscellaneous, set.CatchAll())
	for _, want := range Default().Rules() {
		got, ok := set.Lookup(want.Name)
		require.True(t, ok, want.Name)
		assert.Equal(t, want.Keywords, got.Keywords)
		assert.True(t, want.BudgetPercent.Equal(got.BudgetPercent), want.Name)
	}
}
