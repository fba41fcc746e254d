package domain

import "context"

// Exchanger is the capability set every exchange adapter provides.
type Exchanger interface {
	Name() ExchangeEnum

	// Symbols lists the exchange's active USDT-quoted perpetual contracts,
	// already normalized. A transport or parse failure surfaces as an error;
	// discovery isolates it so one venue's outage never hides the others.
	Symbols(ctx context.Context) ([]Symbol, error)

	// Price fetches the last traded price for symbol. A zero price with a
	// nil error means the exchange has no usable quote right now; errors are
	// treated the same way by the caller.
	Price(ctx context.Context, symbol Symbol) (float64, error)
}
