package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/advice"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/config"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/report"
	"github.com/Veraticus/the-budget-must-flow/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, common.NewUserError("invalid configuration", err)
	}
	return settings, nil
}

// loadRuleSet returns the rules from path, from rules.yaml in the config
// directory when path is empty and that file exists, or the built-in set.
func loadRuleSet(path string) (*rules.Set, error) {
	if path == "" {
		candidate := filepath.Join(config.DefaultDir(), "rules.yaml")
		if _, err := os.Stat(candidate); err != nil {
			return rules.Default(), nil
		}
		path = candidate
	}

	set, err := rules.LoadFile(path)
	if err != nil {
		return nil, common.NewUserError("could not load category rules", err)
	}
	return set, nil
}

// openInput opens the named file, or standard input for "" and "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(args[0]) //nolint:gosec // user-provided input file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewUserError(fmt.Sprintf("file not found: %s", args[0]), err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	return f, nil
}

func parseIncome(s string) (decimal.Decimal, error) {
	income, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil || income.IsNegative() {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("invalid income %q", s), common.ErrInvalidAmount)
	}
	return income, nil
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return common.NewUserError(fmt.Sprintf("output format must be %s or %s", formatText, formatJSON),
			fmt.Errorf("%w: %q", common.ErrUnknownFormat, format))
	}
}

// resolveProfile picks the flag value, then the configured profile, then
// salaried.
func resolveProfile(flag string, settings config.Settings) (model.Profile, error) {
	if flag != "" {
		profile, err := model.ParseProfile(flag)
		if err != nil {
			return "", common.NewUserError("unknown profile", err)
		}
		return profile, nil
	}
	if settings.Profile != "" {
		return settings.Profile, nil
	}
	return model.ProfileSalaried, nil
}

func newAdviceEngine(settings config.Settings) *advice.Engine {
	return advice.NewEngine(advice.WithSavingsTarget(settings.SavingsTarget))
}

func writeSummary(w io.Writer, s report.Summary, format string) error {
	if format == formatJSON {
		return report.WriteJSON(w, s)
	}
	_, err := fmt.Fprintln(w, report.NewFormatter().WithWidth(terminalWidth(w)).Format(s))
	return err
}

// terminalWidth returns the width of the terminal behind w, or 0 when w is
// not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
