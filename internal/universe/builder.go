// Package universe builds the tracked set of symbols: every venue's
// contract list is merged, symbols listed on at least two venues survive,
// the blacklist is applied, and the result is ranked by availability and
// truncated to the current tracked-size bound.
package universe

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/logger"
)

var Logger = logger.Get()

// Discover runs symbol discovery on every adapter concurrently. A failed
// adapter contributes a nil list; its outage never aborts discovery for
// the others.
func Discover(ctx context.Context, adapters []domain.Exchanger) [][]domain.Symbol {
	lists := make([][]domain.Symbol, len(adapters))

	g, ctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		i, adapter := i, adapter
		g.Go(func() error {
			symbols, err := adapter.Symbols(ctx)
			if err != nil {
				Logger.Warn("symbol discovery failed",
					zap.String("exchange", adapter.Name().String()),
					zap.Error(err))
				return nil
			}
			lists[i] = symbols
			return nil
		})
	}
	g.Wait()
	return lists
}

// Build merges the per-exchange discovery lists into the tracked universe.
// Symbols are ranked descending by how many venues list them; ties keep
// first-seen order across the lists, so the result is deterministic for a
// given registry order.
func Build(lists [][]domain.Symbol, blacklisted func(domain.Symbol) bool, limit int) []domain.Symbol {
	counts := make(map[domain.Symbol]int)
	var order []domain.Symbol

	for _, list := range lists {
		for _, raw := range list {
			sym := domain.Normalize(string(raw))
			if counts[sym] == 0 {
				order = append(order, sym)
			}
			counts[sym]++
		}
	}

	kept := make([]domain.Symbol, 0, len(order))
	for _, sym := range order {
		if counts[sym] >= 2 && !blacklisted(sym) {
			kept = append(kept, sym)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return counts[kept[i]] > counts[kept[j]]
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
