package ledger

import (
	"strings"
	"testing"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.RawRecord
	}{
		{
			name: "with header",
			input: "Date,Description,Amount\n" +
				"2024-06-01,Paid rent for June,15000\n" +
				"2024-06-02, Swiggy dinner , 450.50\n",
			want: []model.RawRecord{
				{Date: "2024-06-01", Description: "Paid rent for June", Amount: "15000"},
				{Date: "2024-06-02", Description: "Swiggy dinner", Amount: "450.50"},
			},
		},
		{
			name:  "without header",
			input: "2024-06-01,Netflix,199\n",
			want: []model.RawRecord{
				{Date: "2024-06-01", Description: "Netflix", Amount: "199"},
			},
		},
		{
			name:  "two columns",
			input: "Description,Amount\nRent,1000\nNetflix,200\n",
			want: []model.RawRecord{
				{Description: "Rent", Amount: "1000"},
				{Description: "Netflix", Amount: "200"},
			},
		},
		{
			name:  "quoted amount with grouping",
			input: `2024-06-01,Laptop,"1,250.50"` + "\n",
			want: []model.RawRecord{
				{Date: "2024-06-01", Description: "Laptop", Amount: "1,250.50"},
			},
		},
		{
			name:  "extra commas join the description",
			input: "2024-06-01,Dinner,friends,800\n",
			want: []model.RawRecord{
				{Date: "2024-06-01", Description: "Dinner, friends", Amount: "800"},
			},
		},
		{
			name:  "malformed rows are kept",
			input: "just a note\n2024-06-01,Coffee,abc\n",
			want: []model.RawRecord{
				{Description: "just a note"},
				{Date: "2024-06-01", Description: "Coffee", Amount: "abc"},
			},
		},
		{
			name:  "blank lines and comments",
			input: "\n# June\n2024-06-01,Uber,230\n\n",
			want: []model.RawRecord{
				{Date: "2024-06-01", Description: "Uber", Amount: "230"},
			},
		},
		{
			name: "unbalanced quote stays on its line",
			input: "2024-06-01,\"Dinner at Joe's,500\n" +
				"2024-06-02,Rent,1000\n" +
				"2024-06-03,Netflix,200\n",
			want: []model.RawRecord{
				{Description: "2024-06-01,\"Dinner at Joe's,500"},
				{Date: "2024-06-02", Description: "Rent", Amount: "1000"},
				{Date: "2024-06-03", Description: "Netflix", Amount: "200"},
			},
		},
		{
			name:  "bare quote inside a field",
			input: "Date,Description,Amount\n2024-06-01,12\" pizza,600\n2024-06-02,Uber,230\n",
			want: []model.RawRecord{
				{Description: "2024-06-01,12\" pizza,600"},
				{Date: "2024-06-02", Description: "Uber", Amount: "230"},
			},
		},
		{
			name:  "header after comments",
			input: "# exported from my bank\n\nDescription,Amount\nRent,1000\n",
			want: []model.RawRecord{
				{Description: "Rent", Amount: "1000"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV_UnparsableLinesAreSkipped(t *testing.T) {
	input := "2024-06-01,\"Dinner at Joe's,500\n2024-06-02,Rent,1000\n2024-06-03,Netflix,200\n"

	raw, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, raw, 3)

	for _, r := range raw[1:] {
		assert.NotContains(t, r.Description, "\n")
		assert.NotEmpty(t, r.Amount)
	}
	assert.Empty(t, raw[0].Amount)
}

func TestReadMessages(t *testing.T) {
	input := "Rs. 450.00 debited at Zomato.\n" +
		"\n" +
		"  Your OTP is 1234  \n" +
		"INR 250 spent\n" +
		"on your card at Starbucks.\n"

	t.Run("one per line", func(t *testing.T) {
		got, err := ReadMessages(strings.NewReader(input), false)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Rs. 450.00 debited at Zomato.",
			"Your OTP is 1234",
			"INR 250 spent",
			"on your card at Starbucks.",
		}, got)
	})

	t.Run("blank line separated", func(t *testing.T) {
		got, err := ReadMessages(strings.NewReader(input), true)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Rs. 450.00 debited at Zomato.",
			"Your OTP is 1234\nINR 250 spent\non your card at Starbucks.",
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ReadMessages(strings.NewReader("\n\n"), true)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
