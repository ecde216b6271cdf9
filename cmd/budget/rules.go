package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/rules"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect category rules",
		Long: `List the categories, their keywords and budget shares in classification
order. The first category with a matching keyword wins, so order matters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := currentRuleSet()
			if err != nil {
				return err
			}
			return listRules(cmd, set)
		},
	}

	cmd.AddCommand(validateRulesCmd())
	cmd.AddCommand(exportRulesCmd())

	return cmd
}

func validateRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a rules file without using it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadRuleSet(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("%s is valid: %d categories (%s), catch-all %q",
					args[0], set.Len(), strings.Join(set.Names(), ", "), set.CatchAll())))
			return err
		},
	}
}

func exportRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the current rules as YAML",
		Long:  `Print the rules in use as a rules file, a starting point for your own.`,
		Example: `  budget rules export > ~/.config/budget/rules.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := currentRuleSet()
			if err != nil {
				return err
			}
			return rules.Encode(cmd.OutOrStdout(), set)
		},
	}
}

func currentRuleSet() (*rules.Set, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return loadRuleSet(settings.RulesFile)
}

func listRules(cmd *cobra.Command, set *rules.Set) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("Category"),
		headerStyle.Render("Budget"),
		headerStyle.Render("Keywords"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		strings.Repeat("-", 25),
		strings.Repeat("-", 6),
		strings.Repeat("-", 50))

	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	for _, r := range set.Rules() {
		keywords := strings.Join(r.Keywords, ", ")
		switch {
		case r.IsCatchAll():
			keywords = subtle.Render("(catch-all: everything else)")
		case r.Name == set.SavingsCategory():
			keywords += " " + subtle.Render("(savings target)")
		}
		fmt.Fprintf(w, "%s\t%s%%\t%s\n", r.Name, r.BudgetPercent.String(), keywords)
	}

	return w.Flush()
}
