package arbitrage

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/config"
)

// Notifier delivers an opportunity alert over an external channel. Delivery
// is fire-and-forget from the engine's point of view; the controller only
// cares whether the dispatch succeeded.
type Notifier interface {
	Notify(ctx context.Context, opp domain.ArbitrageOpportunity) error
}

// AuditLog records one row per dispatched alert.
type AuditLog interface {
	Append(opp domain.ArbitrageOpportunity, at time.Time) error
}

// HistoryStore persists dispatched alerts for later review.
type HistoryStore interface {
	Record(ctx context.Context, opp domain.ArbitrageOpportunity, at time.Time) error
}

// Controller owns the between-cycle mutable state: the per-symbol
// notification cooldowns and the dynamic tracked-universe bound. It is
// driven by exactly one goroutine; nothing here is safe for concurrent use.
type Controller struct {
	cfg      *config.Config
	settings config.Settings
	notifier Notifier
	audit    AuditLog
	history  HistoryStore

	lastNotified map[domain.Symbol]time.Time
	trackedLimit int

	now func() time.Time
}

func NewController(cfg *config.Config, settings config.Settings, notifier Notifier, audit AuditLog, history HistoryStore) *Controller {
	return &Controller{
		cfg:          cfg,
		settings:     settings,
		notifier:     notifier,
		audit:        audit,
		history:      history,
		lastNotified: make(map[domain.Symbol]time.Time),
		trackedLimit: settings.MaxTrackedPairs,
		now:          time.Now,
	}
}

// CycleResult summarizes one pass for the publisher and the logs.
type CycleResult struct {
	Profitable   []domain.ArbitrageOpportunity // sorted by spread, descending
	Notified     int
	TrackedLimit int
}

// Run filters the cycle's opportunities to the profitable band, dispatches
// alerts subject to the per-symbol cooldown, and applies the adaptive
// universe sizing step.
//
// The sizing direction follows the original policy deliberately: a lean
// cycle widens the universe to search more candidates, an abundant one
// narrows it to keep the scan focused on what is already paying off.
func (c *Controller) Run(ctx context.Context, opportunities []domain.ArbitrageOpportunity) CycleResult {
	profitable := make([]domain.ArbitrageOpportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		if opp.Spread < c.cfg.MinSpreadThreshold || opp.Spread > c.cfg.MaxSpreadThreshold {
			continue
		}
		profitable = append(profitable, opp)
	}
	sort.SliceStable(profitable, func(i, j int) bool {
		return profitable[i].Spread > profitable[j].Spread
	})

	notified := 0
	for _, opp := range profitable {
		if opp.Spread < c.cfg.NotificationThreshold {
			continue
		}
		if !c.cooldownElapsed(opp.Symbol) {
			continue
		}
		if c.notifier == nil {
			continue
		}
		if err := c.notifier.Notify(ctx, opp); err != nil {
			// Cooldown stays untouched so the next cycle can retry.
			Logger.Error("alert dispatch failed",
				zap.String("symbol", opp.Symbol.String()),
				zap.Error(err))
			continue
		}
		now := c.now()
		c.lastNotified[opp.Symbol] = now
		notified++
		Logger.Info("alert sent",
			zap.String("symbol", opp.Symbol.String()),
			zap.Float64("spread_pct", opp.Spread))

		if c.audit != nil {
			if err := c.audit.Append(opp, now); err != nil {
				Logger.Error("audit log write failed", zap.Error(err))
			}
		}
		if c.history != nil {
			if err := c.history.Record(ctx, opp, now); err != nil {
				Logger.Error("history record failed", zap.Error(err))
			}
		}
	}

	c.resize(len(profitable))

	return CycleResult{
		Profitable:   profitable,
		Notified:     notified,
		TrackedLimit: c.trackedLimit,
	}
}

func (c *Controller) cooldownElapsed(symbol domain.Symbol) bool {
	last, ok := c.lastNotified[symbol]
	if !ok {
		return true
	}
	return c.now().Sub(last) > c.settings.NotificationCooldown
}

func (c *Controller) resize(profitableCount int) {
	switch {
	case profitableCount < c.settings.GrowBelow:
		next := c.trackedLimit + c.settings.GrowStep
		if next > c.settings.TrackedPairsCeil {
			next = c.settings.TrackedPairsCeil
		}
		if next != c.trackedLimit {
			c.trackedLimit = next
			Logger.Info("widening tracked universe", zap.Int("limit", next))
		}
	case profitableCount > c.settings.ShrinkAbove:
		next := c.trackedLimit - c.settings.ShrinkStep
		if next < c.settings.TrackedPairsFloor {
			next = c.settings.TrackedPairsFloor
		}
		if next != c.trackedLimit {
			c.trackedLimit = next
			Logger.Info("narrowing tracked universe", zap.Int("limit", next))
		}
	}
}

// TrackedLimit returns the current dynamic universe size bound.
func (c *Controller) TrackedLimit() int {
	return c.trackedLimit
}
