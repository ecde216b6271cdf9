// Package rules holds the ordered, validated category rule set used to
// classify expenses and to judge spending against budget shares.
package rules

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Set is an immutable, ordered list of category rules. Declaration order is
// the classification tie-break: the first rule with a matching keyword wins.
type Set struct {
	index    map[string]int
	catchAll string
	savings  string
	rules    []model.CategoryRule
}

// Option configures a Set at construction time.
type Option func(*Set)

// WithSavingsCategory names the category whose budget share is a savings
// target rather than a spending cap. It is left out of over-budget checks.
func WithSavingsCategory(name string) Option {
	return func(s *Set) {
		s.savings = strings.TrimSpace(name)
	}
}

// New validates the rules and returns a Set. Keywords are trimmed and
// lower-cased. It fails when names repeat, when there is not exactly one
// catch-all rule (a rule without keywords), when a budget share falls outside
// 0-100, or when the savings category is not declared.
func New(categories []model.CategoryRule, opts ...Option) (*Set, error) {
	s := &Set{
		index: make(map[string]int, len(categories)),
		rules: make([]model.CategoryRule, 0, len(categories)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories declared", common.ErrInvalidConfig)
	}

	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", common.ErrInvalidConfig, i+1)
		}
		if _, exists := s.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", common.ErrDuplicateCategory, name)
		}
		if c.BudgetPercent.IsNegative() || c.BudgetPercent.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: budget for %q must be between 0 and 100, got %s",
				common.ErrInvalidConfig, name, c.BudgetPercent)
		}

		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("%w: empty keyword in %q", common.ErrInvalidConfig, name)
			}
			keywords = append(keywords, kw)
		}

		if len(keywords) == 0 {
			if s.catchAll != "" {
				return nil, fmt.Errorf("%w: %q and %q", common.ErrMultipleCatchAll, s.catchAll, name)
			}
			s.catchAll = name
		}

		s.index[name] = len(s.rules)
		s.rules = append(s.rules, model.CategoryRule{
			Name:          name,
			Keywords:      keywords,
			BudgetPercent: c.BudgetPercent,
		})
	}

	if s.catchAll == "" {
		return nil, common.ErrMissingCatchAll
	}
	if s.savings != "" {
		if _, ok := s.index[s.savings]; !ok {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownSavingsCategory, s.savings)
		}
	}

	return s, nil
}

// MustNew is like New but panics on invalid rules. Only use it for rule sets
// that are compiled into the binary.
func MustNew(categories []model.CategoryRule, opts ...Option) *Set {
	s, err := New(categories, opts...)
	if err != nil {
		panic(fmt.Sprintf("rules: %v", err))
	}
	return s
}

// Rules returns a copy of the rules in declaration order.
func (s *Set) Rules() []model.CategoryRule {
	out := make([]model.CategoryRule, len(s.rules))
	for i, r := range s.rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Names returns the category names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of categories.
func (s *Set) Len() int {
	return len(s.rules)
}

// CatchAll returns the name of the catch-all category.
func (s *Set) CatchAll() string {
	return s.catchAll
}

// SavingsCategory returns the savings category name, or "" when none is set.
func (s *Set) SavingsCategory() string {
	return s.savings
}

// Lookup returns the rule with the given name.
func (s *Set) Lookup(name string) (model.CategoryRule, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.CategoryRule{}, false
	}
	r := s.rules[i]
	r.Keywords = append([]string(nil), r.Keywords...)
	return r, true
}

// Position returns the declaration index of a category, or -1.
func (s *Set) Position(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Match returns the first keyword rule matching the lower-cased text. The
// catch-all is never returned.
func (s *Set) Match(lowered string) (string, bool) {
	for _, r := range s.rules {
		if r.IsCatchAll() {
			continue
		}
		if r.Matches(lowered) {
			return r.Name, true
		}
	}
	return "", false
}
