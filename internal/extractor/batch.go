package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"golang.org/x/sync/errgroup"
)

// Match is a message that parsed as a transaction.
type Match struct {
	Transaction model.Transaction
	Index       int // position of the message in the batch
}

// ExtractBatch extracts every message and returns the matches in input order.
// The only error is cancellation of ctx.
func (e *Extractor) ExtractBatch(ctx context.Context, messages []string) ([]Match, error) {
	results := make([]*model.Transaction, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, msg := range messages {
		i, msg := i, msg
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if txn, ok := e.Extract(msg); ok {
				results[i] = txn
			}
			if e.progress != nil {
				e.progress(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction canceled: %w", err)
	}

	matches := make([]Match, 0, len(messages))
	for i, txn := range results {
		if txn != nil {
			matches = append(matches, Match{Index: i, Transaction: *txn})
		}
	}

	slog.Debug("extracted transactions",
		"messages", len(messages),
		"transactions", len(matches),
		"ignored", len(messages)-len(matches))

	return matches, nil
}
