// Package extractor turns bank notification text into structured transactions
// and filters out messages that are not transactions, such as OTP alerts.
package extractor

import (
	"runtime"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Config holds the keyword lists that drive extraction. Empty lists fall back
// to the defaults.
type Config struct {
	// TransactionKeywords must appear for a message to be considered at all.
	TransactionKeywords []string
	// ExclusionKeywords reject a message even when it looks like a transaction.
	ExclusionKeywords []string
	// CreditKeywords mark a transaction as income.
	CreditKeywords []string
}

// DefaultConfig returns the keyword lists for Indian bank SMS alerts.
func DefaultConfig() Config {
	return Config{
		TransactionKeywords: []string{"debited", "credited", "spent", "rs.", "inr", "txn"},
		ExclusionKeywords:   []string{"otp", "one time password", "one-time password", "verification"},
		CreditKeywords:      []string{"credited"},
	}
}

// Extractor parses notification messages. It is safe for concurrent use.
type Extractor struct {
	progress func(int)
	cfg      Config
	workers  int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWorkers limits how many messages ExtractBatch handles at once.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProgress registers a callback invoked after each batch message.
func WithProgress(fn func(done int)) Option {
	return func(e *Extractor) {
		e.progress = fn
	}
}

// New creates an extractor. Keywords are lower-cased.
func New(cfg Config, opts ...Option) *Extractor {
	defaults := DefaultConfig()
	e := &Extractor{
		cfg: Config{
			TransactionKeywords: normalize(cfg.TransactionKeywords, defaults.TransactionKeywords),
			ExclusionKeywords:   normalize(cfg.ExclusionKeywords, defaults.ExclusionKeywords),
			CreditKeywords:      normalize(cfg.CreditKeywords, defaults.CreditKeywords),
		},
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the normalized keyword lists in use.
func (e *Extractor) Config() Config {
	return Config{
		TransactionKeywords: append([]string(nil), e.cfg.TransactionKeywords...),
		ExclusionKeywords:   append([]string(nil), e.cfg.ExclusionKeywords...),
		CreditKeywords:      append([]string(nil), e.cfg.CreditKeywords...),
	}
}

// Extract parses one message. It returns false for anything that is not a
// transaction: no transaction keyword, any exclusion keyword (exclusion wins
// over transaction keywords), or no amount next to a currency marker.
func (e *Extractor) Extract(raw string) (*model.Transaction, bool) {
	text := strings.ToLower(raw)

	if !containsAny(text, e.cfg.TransactionKeywords) {
		return nil, false
	}
	if containsAny(text, e.cfg.ExclusionKeywords) {
		return nil, false
	}

	amount, ok := ExtractAmount(text)
	if !ok {
		return nil, false
	}

	direction := model.DirectionExpense
	if containsAny(text, e.cfg.CreditKeywords) {
		direction = model.DirectionIncome
	}

	return &model.Transaction{
		Raw:          raw,
		Amount:       amount,
		Direction:    direction,
		Counterparty: ExtractCounterparty(text),
	}, true
}

func normalize(keywords, fallback []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
