package rules

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// categoryEntry is one category as written in a rules file.
type categoryEntry struct {
	Name          string   `yaml:"name"`
	Keywords      []string `yaml:"keywords,omitempty"`
	BudgetPercent float64  `yaml:"budget_percent"`
}

// fileFormat is the YAML layout of a rules file. Categories are a sequence so
// that their order survives decoding.
type fileFormat struct {
	CatchAll        string          `yaml:"catch_all"`
	SavingsCategory string          `yaml:"savings_category"`
	Categories      []categoryEntry `yaml:"categories"`
}

// Load reads a YAML rule set. When catch_all names a category that is not
// listed, it is appended with no keywords and a zero budget.
func Load(r io.Reader) (*Set, error) {
	var f fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty rules file", common.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: failed to parse rules: %v", common.ErrInvalidConfig, err)
	}

	categories := make([]model.CategoryRule, 0, len(f.Categories)+1)
	catchAll := strings.TrimSpace(f.CatchAll)
	declared := false

	for _, entry := range f.Categories {
		name := strings.TrimSpace(entry.Name)
		if catchAll != "" && name == catchAll {
			if len(entry.Keywords) > 0 {
				return nil, fmt.Errorf("%w: catch-all %q must not have keywords", common.ErrInvalidConfig, name)
			}
			declared = true
		}
		categories = append(categories, model.CategoryRule{
			Name:          name,
			Keywords:      entry.Keywords,
			BudgetPercent: decimal.NewFromFloat(entry.BudgetPercent),
		})
	}

	if catchAll != "" && !declared {
		categories = append(categories, model.CategoryRule{
			Name:          catchAll,
			BudgetPercent: decimal.Zero,
		})
	}

	var opts []Option
	if f.SavingsCategory != "" {
		opts = append(opts, WithSavingsCategory(f.SavingsCategory))
	}

	return New(categories, opts...)
}

// LoadFile reads a YAML rule set from disk.
func LoadFile(path string) (*Set, error) {
	file, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close rules file", "path", path, "error", closeErr)
		}
	}()

	set, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}

	slog.Debug("loaded category rules", "path", path, "count", set.Len(), "catch_all", set.CatchAll())
	return set, nil
}

// Encode writes the set in the format read by Load.
func Encode(w io.Writer, s *Set) error {
	f := fileFormat{
		CatchAll:        s.CatchAll(),
		SavingsCategory: s.SavingsCategory(),
		Categories:      make([]categoryEntry, 0, s.Len()),
	}
	for _, r := range s.Rules() {
		share, _ := r.BudgetPercent.Float64()
		f.Categories = append(f.Categories, categoryEntry{
			Name:          r.Name,
			Keywords:      r.Keywords,
			BudgetPercent: share,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}
