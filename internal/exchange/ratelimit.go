package exchange

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"perp-spread-monitor/internal/domain"
)

const maxJitter = 500 * time.Millisecond

// Pacer enforces each exchange's minimum inter-request delay plus a small
// random jitter so many concurrent symbol tasks never synchronize into a
// burst against one venue.
type Pacer struct {
	mu       sync.Mutex
	limiters map[domain.ExchangeEnum]*rate.Limiter
	delays   map[domain.ExchangeEnum]time.Duration
	fallback time.Duration
	jitter   time.Duration
}

func NewPacer(delays map[domain.ExchangeEnum]time.Duration, fallback time.Duration) *Pacer {
	return &Pacer{
		limiters: make(map[domain.ExchangeEnum]*rate.Limiter),
		delays:   delays,
		fallback: fallback,
		jitter:   maxJitter,
	}
}

func (p *Pacer) limiter(exchange domain.ExchangeEnum) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, ok := p.limiters[exchange]; ok {
		return limiter
	}

	delay, ok := p.delays[exchange]
	if !ok {
		delay = p.fallback
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	p.limiters[exchange] = limiter
	return limiter
}

// Wait blocks until the exchange's next request slot, then a random extra
// 0..jitter, or until ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context, exchange domain.ExchangeEnum) error {
	if err := p.limiter(exchange).Wait(ctx); err != nil {
		return err
	}
	if p.jitter <= 0 {
		return nil
	}
	select {
	case <-time.After(time.Duration(rand.Int63n(int64(p.jitter)))):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
