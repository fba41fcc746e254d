package arbitrage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"perp-spread-monitor/internal/domain"
)

// Scheduler fans out price fetches for the tracked universe. The number of
// in-flight symbol tasks is capped by a weighted semaphore; within one
// symbol's task the exchanges are queried sequentially, which keeps the
// per-exchange pacing limiter as the only throttle point.
type Scheduler struct {
	adapters []domain.Exchanger
	sem      *semaphore.Weighted
}

func NewScheduler(adapters []domain.Exchanger, maxConcurrent int64) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scheduler{
		adapters: adapters,
		sem:      semaphore.NewWeighted(maxConcurrent),
	}
}

// FetchAll gathers every exchange's last price for every tracked symbol and
// returns only after all symbol tasks finish, so analysis always sees one
// complete batch. A failed fetch simply leaves no quote; it never blocks
// the other exchanges or symbols.
func (s *Scheduler) FetchAll(ctx context.Context, symbols []domain.Symbol) map[domain.Symbol]domain.PriceSet {
	results := make(map[domain.Symbol]domain.PriceSet, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, symbol := range symbols {
		symbol := symbol
		if err := s.sem.Acquire(ctx, 1); err != nil {
			break // shutting down; return what completed
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.sem.Release(1)

			prices := s.fetchSymbol(ctx, symbol)
			if len(prices) == 0 {
				return
			}
			mu.Lock()
			results[symbol] = prices
			mu.Unlock()
		}()
	}

	wg.Wait()
	return results
}

func (s *Scheduler) fetchSymbol(ctx context.Context, symbol domain.Symbol) domain.PriceSet {
	prices := make(domain.PriceSet)
	for _, adapter := range s.adapters {
		if ctx.Err() != nil {
			break
		}
		price, err := adapter.Price(ctx, symbol)
		if err != nil {
			Logger.Debug("price fetch failed",
				zap.String("exchange", adapter.Name().String()),
				zap.String("symbol", symbol.String()),
				zap.Error(err))
			continue
		}
		if price > 0 {
			prices[adapter.Name()] = domain.PriceQuote{
				Exchange:   adapter.Name(),
				Symbol:     symbol,
				Price:      price,
				ObservedAt: time.Now(),
			}
		}
	}
	return prices
}
