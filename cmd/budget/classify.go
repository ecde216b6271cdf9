package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/ledger"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [description...]",
		Short: "Show the category for expense descriptions",
		Long: `Print the budget category each description falls into. Descriptions are
taken from the arguments, or one per line from standard input when there are
none. Descriptions matching no keyword land in the catch-all category.`,
		Example: `  budget classify "Paid rent for June" "Swiggy dinner"
  cat descriptions.txt | budget classify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			set, err := loadRuleSet(settings.RulesFile)
			if err != nil {
				return err
			}

			descriptions := args
			if len(descriptions) == 0 {
				if descriptions, err = ledger.ReadMessages(cmd.InOrStdin(), false); err != nil {
					return common.NewUserError("could not read descriptions", err)
				}
			}

			classifier := classification.NewClassifier(set)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Description"),
				headerStyle.Render("Category"),
				headerStyle.Render("Budget"))
			fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Repeat("-", 30), strings.Repeat("-", 25), strings.Repeat("-", 6))

			for _, d := range descriptions {
				category := classifier.Classify(d)
				budget := "-"
				if rule, ok := set.Lookup(category); ok {
					budget = rule.BudgetPercent.String() + "%"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", d, category, budget)
			}
			return w.Flush()
		},
	}
}
