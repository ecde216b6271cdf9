// Package model defines the core data structures for the budget engine.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryRule maps a budget category to the keywords that select it and the
// share of total spending it is expected to take.
type CategoryRule struct {
	Name          string
	Keywords      []string // lower-cased, matched as substrings
	BudgetPercent decimal.Decimal
}

// IsCatchAll reports whether the rule matches anything left unmatched.
func (r CategoryRule) IsCatchAll() bool {
	return len(r.Keywords) == 0
}

// Matches reports whether any keyword occurs in the already lower-cased text.
func (r CategoryRule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
