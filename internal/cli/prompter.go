package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// DoneKeyword ends interactive ledger entry.
const DoneKeyword = "done"

// ErrInputTerminated is returned when input ends before a required answer.
var ErrInputTerminated = errors.New("input terminated")

// Prompter runs the interactive question and answer session used by
// "analyze --interactive".
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// PromptProfile asks for the user's profile until a supported one is given.
func (p *Prompter) PromptProfile(ctx context.Context) (model.Profile, error) {
	names := make([]string, 0, len(model.Profiles()))
	for _, profile := range model.Profiles() {
		names = append(names, string(profile))
	}

	if _, err := fmt.Fprintln(p.writer, FormatTitle("Let's start by understanding your profile.")); err != nil {
		return "", fmt.Errorf("failed to write profile intro: %w", err)
	}

	for {
		input, err := p.ask(ctx, fmt.Sprintf("Enter your profile (%s)", strings.Join(names, ", ")))
		if err != nil {
			return "", err
		}

		profile, err := model.ParseProfile(input)
		if err == nil {
			return profile, nil
		}

		slog.Debug("rejected profile", "input", input)
		p.complain("Invalid profile. Please choose from the given options.")
	}
}

// PromptIncome asks for the monthly income until a non-negative number is given.
func (p *Prompter) PromptIncome(ctx context.Context) (decimal.Decimal, error) {
	for {
		input, err := p.ask(ctx, "What is your total monthly income?")
		if err != nil {
			return decimal.Zero, err
		}

		income, err := decimal.NewFromString(strings.ReplaceAll(input, ",", ""))
		if err == nil && !income.IsNegative() {
			return income, nil
		}

		p.complain("Invalid input. Please enter a number for your income.")
	}
}

// PromptLedger collects expense lines until the user types "done" or input
// ends. Lines are returned as typed, without validation.
func (p *Prompter) PromptLedger(ctx context.Context) ([]string, error) {
	intro := []string{
		FormatInfo("Enter your expenses one per line as Date,Description,Amount"),
		SubtleStyle.Render("  e.g. 2024-06-01,Paid rent for June,15000"),
		SubtleStyle.Render(fmt.Sprintf("  Type '%s' on a new line when you are finished.", DoneKeyword)),
	}
	for _, line := range intro {
		if _, err := fmt.Fprintln(p.writer, line); err != nil {
			return nil, fmt.Errorf("failed to write ledger instructions: %w", err)
		}
	}

	var lines []string
	for {
		line, err := p.reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}

		if strings.EqualFold(line, DoneKeyword) {
			return lines, nil
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputTerminated
	}
	if err != nil {
		return "", err
	}
	return input, nil
}

func (p *Prompter) complain(message string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(message)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}
