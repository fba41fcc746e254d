// Package notify implements the outbound alert channels. Delivery is
// fire-and-forget: a failed dispatch is reported to the caller and logged,
// nothing more.
package notify

import (
	"context"
	"errors"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/logger"
)

var Logger = logger.Get()

type Notifier interface {
	Notify(ctx context.Context, opp domain.ArbitrageOpportunity) error
}

// Multi fans an alert out to every configured channel. The dispatch counts
// as successful when at least one channel accepted it.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, opp domain.ArbitrageOpportunity) error {
	if len(m) == 0 {
		return errors.New("no notification channels configured")
	}
	var errs []error
	delivered := false
	for _, notifier := range m {
		if err := notifier.Notify(ctx, opp); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	return errors.Join(errs...)
}
