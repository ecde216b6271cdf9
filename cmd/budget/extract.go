package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/the-budget-must-flow/internal/budget"
	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/extractor"
	"github.com/Veraticus/the-budget-must-flow/internal/ledger"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type extractOptions struct {
	income    string
	profile   string
	format    string
	multiline bool
	aggregate bool
	progress  bool
}

func extractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [messages.txt]",
		Short: "Pull transactions out of bank SMS alerts",
		Long: `Read bank notification messages, one per line (or separated by blank lines
with --multiline), and print the amount, direction and counterparty of every
message that is a transaction. OTP and verification messages are ignored.

With --aggregate the extracted debits are classified and analyzed like a
ledger. Income defaults to the sum of the credited messages.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.multiline, "multiline", "m", false, "messages are separated by blank lines")
	cmd.Flags().BoolVarP(&opts.aggregate, "aggregate", "a", false, "build a budget report from the extracted debits")
	cmd.Flags().StringVar(&opts.income, "income", "", "monthly income for --aggregate (default: sum of credits)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "profile for --aggregate advice")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *extractOptions) error {
	ctx := cmd.Context()

	if err := checkFormat(opts.format); err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	messages, err := ledger.ReadMessages(in, opts.multiline)
	if err != nil {
		return common.NewUserError("could not read messages", err)
	}

	extractorOpts := []extractor.Option{extractor.WithWorkers(settings.Workers)}
	if opts.progress {
		bar := cli.NewProgress(cmd.ErrOrStderr(), len(messages), "Extracting transactions...")
		extractorOpts = append(extractorOpts, extractor.WithProgress(cli.ProgressFunc(bar)))
	}

	matches, err := extractor.New(settings.Extract, extractorOpts...).ExtractBatch(ctx, messages)
	if err != nil {
		return err
	}

	common.LogInfo("extraction complete", common.Fields{
		"messages":     len(messages),
		"transactions": len(matches),
	})

	if !opts.aggregate {
		if opts.format == formatJSON {
			return writeMatchesJSON(cmd.OutOrStdout(), matches)
		}
		return writeMatchesTable(cmd.OutOrStdout(), matches)
	}

	set, err := loadRuleSet(settings.RulesFile)
	if err != nil {
		return err
	}
	profile, err := resolveProfile(opts.profile, settings)
	if err != nil {
		return err
	}

	records := make([]model.ExpenseRecord, 0, len(matches))
	credits := decimal.Zero
	for _, m := range matches {
		if expense, ok := m.Transaction.AsExpense(); ok {
			records = append(records, expense)
			continue
		}
		credits = credits.Add(m.Transaction.Amount)
	}

	income := credits
	if opts.income != "" {
		if income, err = parseIncome(opts.income); err != nil {
			return err
		}
	}

	classifier := classification.NewClassifier(set, classification.WithWorkers(settings.Workers))
	classified, err := classifier.ClassifyRecords(ctx, records)
	if err != nil {
		return err
	}
	result := budget.NewAggregator(classifier).Aggregate(classified, income)

	return writeSummary(cmd.OutOrStdout(), report.NewSummary(newAdviceEngine(settings), result, profile), opts.format)
}

type matchJSON struct {
	Counterparty string          `json:"counterparty"`
	Direction    model.Direction `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Message      string          `json:"message"`
	Index        int             `json:"index"`
}

func writeMatchesJSON(w io.Writer, matches []extractor.Match) error {
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchJSON{
			Index:        m.Index,
			Amount:       m.Transaction.Amount,
			Direction:    m.Transaction.Direction,
			Counterparty: m.Transaction.Counterparty,
			Message:      m.Transaction.Raw,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	return nil
}

func writeMatchesTable(w io.Writer, matches []extractor.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, cli.InfoStyle.Render("No transactions found."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("Direction"),
		headerStyle.Render("Amount"),
		headerStyle.Render("Counterparty"))

	for _, m := range matches {
		direction := cli.ErrorStyle.Render(string(m.Transaction.Direction))
		if m.Transaction.Direction == model.DirectionIncome {
			direction = cli.SuccessStyle.Render(string(m.Transaction.Direction))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			m.Index+1, direction, report.FormatAmount(m.Transaction.Amount), m.Transaction.Counterparty)
	}

	return tw.Flush()
}
