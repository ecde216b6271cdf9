package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/budget"
	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/ledger"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	income      string
	profile     string
	format      string
	ofxFile     string
	interactive bool
	progress    bool
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [ledger.csv]",
		Short: "Analyze an expense ledger against your budget",
		Long: `Classify every expense in a ledger, total spending per category, and compare
each category's share with its budget.

The ledger is CSV with Date,Description,Amount or Description,Amount rows; a
header row is optional. It is read from the named file or standard input.
Rows without a valid amount are skipped and counted. Use --ofx to read a bank
or credit card download instead, or --interactive to be asked for everything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.income, "income", "", "total monthly income (required unless --interactive or --ofx)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "profile: student, salaried, businessman, daily_wage")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().StringVar(&opts.ofxFile, "ofx", "", "read expenses and income from an OFX/QFX statement")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for profile, income and expenses")

	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a classification progress bar on stderr")

	cmd.MarkFlagsMutuallyExclusive("interactive", "ofx")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := checkFormat(opts.format); err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	set, err := loadRuleSet(settings.RulesFile)
	if err != nil {
		return err
	}

	var (
		raw     []model.RawRecord
		income  decimal.Decimal
		profile model.Profile
	)

	switch {
	case opts.interactive:
		handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
		promptCtx := handler.HandleInterrupts(ctx, "Budget session")
		raw, income, profile, err = gatherInteractive(promptCtx, cmd, opts, settings.Profile)
		handler.Stop()
		if err != nil && handler.WasInterrupted() {
			return nil
		}
	case opts.ofxFile != "":
		raw, income, err = gatherOFX(ctx, cmd, opts)
	default:
		raw, income, err = gatherCSV(cmd, args, opts)
	}
	if err != nil {
		return err
	}

	if profile == "" {
		if profile, err = resolveProfile(opts.profile, settings); err != nil {
			return err
		}
	}

	records, skipped := budget.ParseRecords(raw)

	classifierOpts := []classification.Option{classification.WithWorkers(settings.Workers)}
	if opts.progress {
		bar := cli.NewProgress(cmd.ErrOrStderr(), len(records), "Classifying expenses...")
		classifierOpts = append(classifierOpts, classification.WithProgress(cli.ProgressFunc(bar)))
	}
	classifier := classification.NewClassifier(set, classifierOpts...)
	classified, err := classifier.ClassifyRecords(ctx, records)
	if err != nil {
		return err
	}

	result := budget.NewAggregator(classifier).Aggregate(classified, income)
	result.Skipped += skipped

	summary := report.NewSummary(newAdviceEngine(settings), result, profile)
	common.LogInfo("analysis complete", common.Fields{
		"report_id": result.ID,
		"records":   result.RecordCount,
		"skipped":   result.Skipped,
		"outcome":   summary.Outcome.String(),
	})

	return writeSummary(cmd.OutOrStdout(), summary, opts.format)
}

func gatherCSV(cmd *cobra.Command, args []string, opts *analyzeOptions) ([]model.RawRecord, decimal.Decimal, error) {
	if opts.income == "" {
		return nil, decimal.Zero, common.NewUserError("--income is required", nil)
	}
	income, err := parseIncome(opts.income)
	if err != nil {
		return nil, decimal.Zero, err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer closeQuietly(in)

	raw, err := ledger.ReadCSV(in)
	if err != nil {
		return nil, decimal.Zero, common.NewUserError("could not read ledger", err)
	}
	return raw, income, nil
}

func gatherOFX(ctx context.Context, cmd *cobra.Command, opts *analyzeOptions) ([]model.RawRecord, decimal.Decimal, error) {
	in, err := openInput(cmd, []string{opts.ofxFile})
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer closeQuietly(in)

	stmt, err := ledger.ReadOFX(ctx, in)
	if err != nil {
		return nil, decimal.Zero, common.NewUserError("could not read OFX statement", err)
	}

	// An explicit income overrides the credits found in the statement.
	income := stmt.Income
	if opts.income != "" {
		if income, err = parseIncome(opts.income); err != nil {
			return nil, decimal.Zero, err
		}
	}

	slog.Debug("read OFX statement", "accounts", stmt.Accounts, "debits", len(stmt.Records))
	return stmt.Records, income, nil
}

func gatherInteractive(ctx context.Context, cmd *cobra.Command, opts *analyzeOptions, configured model.Profile) ([]model.RawRecord, decimal.Decimal, model.Profile, error) {
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	var (
		profile model.Profile
		err     error
	)
	switch {
	case opts.profile != "":
		if profile, err = model.ParseProfile(opts.profile); err != nil {
			return nil, decimal.Zero, "", common.NewUserError("unknown profile", err)
		}
	case configured != "":
		profile = configured
	default:
		if profile, err = prompter.PromptProfile(ctx); err != nil {
			return nil, decimal.Zero, "", err
		}
	}

	var income decimal.Decimal
	if opts.income != "" {
		income, err = parseIncome(opts.income)
	} else {
		income, err = prompter.PromptIncome(ctx)
	}
	if err != nil {
		return nil, decimal.Zero, "", err
	}

	lines, err := prompter.PromptLedger(ctx)
	if err != nil {
		return nil, decimal.Zero, "", err
	}
	raw, err := ledger.ReadCSV(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		return nil, decimal.Zero, "", common.NewUserError("could not read the expenses you entered", err)
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
		return nil, decimal.Zero, "", err
	}
	return raw, income, profile, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("Failed to close input", "error", err)
	}
}
