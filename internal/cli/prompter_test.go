package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_PromptProfile(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       model.Profile
		wantErr    error
		wantErrors int
	}{
		{
			name:  "valid first try",
			input: "student\n",
			want:  model.ProfileStudent,
		},
		{
			name:  "case and space ignored",
			input: "  Daily_Wage \n",
			want:  model.ProfileDailyWage,
		},
		{
			name:       "re-prompt on invalid",
			input:      "pirate\n\nsalaried\n",
			want:       model.ProfileSalaried,
			wantErrors: 2,
		},
		{
			name:       "input ends",
			input:      "pirate\n",
			wantErr:    ErrInputTerminated,
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.PromptProfile(context.Background())

			assert.Equal(t, tt.wantErrors, strings.Count(out.String(), "Invalid profile"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "student, salaried, businessman, daily_wage")
		})
	}
}

func TestPrompter_PromptIncome(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantErr    error
		wantErrors int
	}{
		{name: "integer", input: "50000\n", want: "50000"},
		{name: "grouped", input: "1,20,000.50\n", want: "120000.50"},
		{name: "zero income", input: "0\n", want: "0"},
		{name: "re-prompt on text", input: "lots\n-5\n42000\n", want: "42000", wantErrors: 2},
		{name: "input ends", input: "", wantErr: ErrInputTerminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.PromptIncome(context.Background())

			assert.Equal(t, tt.wantErrors, strings.Count(out.String(), "Invalid input"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestPrompter_PromptLedger(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "until done",
			input: "2024-06-01,Rent,1000\n\n2024-06-02,Netflix,200\nDONE\nignored,1\n",
			want:  []string{"2024-06-01,Rent,1000", "2024-06-02,Netflix,200"},
		},
		{
			name:  "until end of input",
			input: "Rent,1000\nNetflix,200",
			want:  []string{"Rent,1000", "Netflix,200"},
		},
		{
			name:  "nothing entered",
			input: "done\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.PromptLedger(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Date,Description,Amount")
		})
	}
}

func TestPrompter_Canceled(t *testing.T) {
	p := NewPrompter(strings.NewReader("student\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PromptProfile(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)

	_, err = p.PromptLedger(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestProgressFunc(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgress(&out, 3, "Extracting")
	progress := ProgressFunc(bar)

	progress(1)
	progress(2)

	assert.InDelta(t, 1.0, bar.State().CurrentPercent, 0.0001)
}
