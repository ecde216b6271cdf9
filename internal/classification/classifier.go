// Package classification assigns budget categories to expense descriptions.
package classification

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/rules"
	"golang.org/x/sync/errgroup"
)

// Classifier maps descriptions to categories using keyword rules. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    *rules.Set
	progress func(int)
	workers  int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWorkers limits how many records ClassifyRecords handles at once.
func WithWorkers(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress registers a callback invoked after each batch record.
func WithProgress(fn func(done int)) Option {
	return func(c *Classifier) {
		c.progress = fn
	}
}

// NewClassifier creates a classifier over the given rule set.
func NewClassifier(set *rules.Set, opts ...Option) *Classifier {
	c := &Classifier{
		rules:   set,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the rule set the classifier uses.
func (c *Classifier) Rules() *rules.Set {
	return c.rules
}

// Classify returns the first category, in rule declaration order, with a
// keyword contained in the description. Descriptions matching nothing,
// including empty ones, get the catch-all category.
func (c *Classifier) Classify(description string) string {
	lowered := strings.ToLower(strings.TrimSpace(description))
	if lowered == "" {
		return c.rules.CatchAll()
	}

	if name, ok := c.rules.Match(lowered); ok {
		return name
	}
	return c.rules.CatchAll()
}

// ClassifyRecords returns copies of the records with categories assigned, in
// input order. Records that already carry a category keep it. The only error
// is cancellation of ctx.
func (c *Classifier) ClassifyRecords(ctx context.Context, records []model.ExpenseRecord) ([]model.ExpenseRecord, error) {
	out := make([]model.ExpenseRecord, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, record := range records {
		i, record := i, record
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !record.IsClassified() {
				record.Category = c.Classify(record.Description)
			}
			out[i] = record
			if c.progress != nil {
				c.progress(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classification canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification canceled: %w", err)
	}

	return out, nil
}
