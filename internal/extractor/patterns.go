package extractor

import (
	"regexp"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

var (
	// prefixAmountPattern finds a number written after a currency marker,
	// e.g. "Rs. 1,250.50" or "₹250".
	prefixAmountPattern = regexp.MustCompile(`(?i)(?:\b(?:rs\.?|inr)|₹)\s*(\d[\d,]*(?:\.\d+)?)`)

	// suffixAmountPattern finds a number followed by a marker, e.g. "250 INR".
	// The number must not be glued to a word, so "XX1234 Rs" is not an amount.
	suffixAmountPattern = regexp.MustCompile(`(?i)(?:^|[^\w.,])(\d[\d,]*(?:\.\d+)?)\s*(?:rs\b|inr\b|rupees\b|₹)`)

	// counterpartyPattern captures the words after "at", "on" or "to". The
	// run stops at anything outside the class, including newlines.
	counterpartyPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:at|on|to)\s+([a-z0-9 \t.&'\-]+)`)
)

// ExtractAmount returns the amount written next to a currency marker, e.g.
// "Rs. 1,250.50" or "250 INR". A marker followed by a number anywhere in the
// text wins over a number followed by a marker, since account and card numbers
// often sit just before the real amount. Grouping commas are dropped. It
// reports false when no marked amount exists or the amount is not positive.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	m := prefixAmountPattern.FindStringSubmatch(text)
	if m == nil {
		m = suffixAmountPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

// ExtractCounterparty returns the text following the first "at", "on" or
// "to", cut at the first period and trimmed. It returns
// model.UnknownCounterparty when nothing usable follows.
func ExtractCounterparty(text string) string {
	m := counterpartyPattern.FindStringSubmatch(text)
	if m == nil {
		return model.UnknownCounterparty
	}

	name := m[1]
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.UnknownCounterparty
	}
	return name
}

// containsAny reports whether any keyword occurs in text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
