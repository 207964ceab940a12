package search

import (
	"context"
	"log/slog"

	"github.com/exposurescan/exposurescan/internal/model"
	"golang.org/x/sync/errgroup"
)

// Aggregator fans one query out to multiple providers concurrently and
// merges their outputs.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an Aggregator. A nil logger uses slog.Default.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// SearchAll runs the query against every provider concurrently and
// returns the merged, deduplicated candidates.
//
// A provider failure is isolated: it is logged, contributes zero
// candidates, and never aborts the other providers. Merge order is the
// provider order given (each provider's own list is already rank
// ordered); duplicates by normalized URL collapse to the first
// occurrence.
func (a *Aggregator) SearchAll(ctx context.Context, providers []Provider, query string, pages int) []model.Candidate {
	// Per-provider slots keep merge order independent of completion order.
	slots := make([][]model.Candidate, len(providers))

	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			candidates, err := p.Search(ctx, query, pages)
			if err != nil {
				// Isolation contract: log and contribute nothing.
				a.logger.Warn("provider search failed",
					"provider", p.Name(),
					"error", err)
				return nil
			}
			slots[i] = candidates
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	return dedupe(slots)
}

// dedupe concatenates the slots in order and drops candidates whose
// normalized URL was already seen.
func dedupe(slots [][]model.Candidate) []model.Candidate {
	seen := make(map[string]bool)
	var merged []model.Candidate
	for _, slot := range slots {
		for _, c := range slot {
			key := c.Key()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, c)
		}
	}
	return merged
}
