package arbitrage

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/config"
	"perp-spread-monitor/internal/snapshot"
	"perp-spread-monitor/internal/universe"
)

// Publisher receives the finished cycle's snapshot.
type Publisher interface {
	Publish(snap snapshot.Snapshot) error
}

// Engine runs the fetch-all → analyze-all → control → publish loop over
// the tracked universe. All mutable cycle state lives here or in the
// controller; the universe is read-only during a cycle and replaced
// wholesale at refresh points, so no torn reads occur mid-cycle.
type Engine struct {
	cfg        *config.Config
	settings   config.Settings
	adapters   []domain.Exchanger
	scheduler  *Scheduler
	controller *Controller
	publisher  Publisher
	fees       Fees

	tracked     []domain.Symbol
	lastRefresh time.Time
	cycle       int

	now func() time.Time
}

func NewEngine(cfg *config.Config, settings config.Settings, adapters []domain.Exchanger, controller *Controller, publisher Publisher) *Engine {
	return &Engine{
		cfg:        cfg,
		settings:   settings,
		adapters:   adapters,
		scheduler:  NewScheduler(adapters, settings.MaxConcurrentRequests),
		controller: controller,
		publisher:  publisher,
		fees:       Fees(settings.Commissions),
		now:        time.Now,
	}
}

// Run blocks until ctx is cancelled. A panic inside one cycle is logged
// with its stack and the loop moves on to the next cycle; only the
// external interrupt terminates the loop.
func (e *Engine) Run(ctx context.Context) error {
	Logger.Info("starting arbitrage monitor",
		zap.Duration("refresh_rate", e.settings.RefreshRate),
		zap.Float64("notification_threshold_pct", e.cfg.NotificationThreshold),
		zap.Int("max_tracked_pairs", e.controller.TrackedLimit()),
		zap.Int("exchanges", len(e.adapters)))

	e.refreshUniverse(ctx)

	for {
		start := e.now()
		e.cycle++
		Logger.Info("cycle started", zap.Int("cycle", e.cycle))

		e.runCycle(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		elapsed := e.now().Sub(start)
		wait := e.settings.RefreshRate - elapsed
		if wait < e.settings.MinCycleGap {
			wait = e.settings.MinCycleGap
		}
		Logger.Info("cycle finished",
			zap.Int("cycle", e.cycle),
			zap.Duration("took", elapsed),
			zap.Duration("next_in", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (e *Engine) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Error("cycle panicked",
				zap.Int("cycle", e.cycle),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()

	if e.now().Sub(e.lastRefresh) > e.settings.UniverseRefresh {
		e.refreshUniverse(ctx)
	}

	priceSets := e.scheduler.FetchAll(ctx, e.tracked)

	opportunities := make([]domain.ArbitrageOpportunity, 0)
	for _, symbol := range e.tracked {
		prices, ok := priceSets[symbol]
		if !ok {
			continue
		}
		if opp, ok := Analyze(symbol, prices, e.fees); ok {
			opportunities = append(opportunities, opp)
		}
	}

	result := e.controller.Run(ctx, opportunities)
	Logger.Info("profitable pairs found", zap.Int("count", len(result.Profitable)))
	for i, opp := range result.Profitable {
		if i >= e.settings.MaxPairsToShow {
			break
		}
		Logger.Info("spread",
			zap.String("symbol", opp.Symbol.String()),
			zap.Float64("spread_pct", opp.Spread),
			zap.String("buy", opp.BuyExchange.String()),
			zap.String("sell", opp.SellExchange.String()))
	}

	snap := snapshot.Build(e.now(), len(e.tracked), result.Profitable, e.settings.TopOpportunities)
	if err := e.publisher.Publish(snap); err != nil {
		Logger.Error("snapshot publish failed", zap.Error(err))
	}
}

// refreshUniverse rebuilds the tracked set from fresh discovery lists,
// applying the controller's current dynamic size bound. The replacement
// happens between cycles only.
func (e *Engine) refreshUniverse(ctx context.Context) {
	lists := universe.Discover(ctx, e.adapters)
	e.tracked = universe.Build(lists, e.cfg.IsBlacklisted, e.controller.TrackedLimit())
	e.lastRefresh = e.now()
	Logger.Info("tracked universe rebuilt", zap.Int("symbols", len(e.tracked)))
}
