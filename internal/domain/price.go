package domain

import "time"

// PriceQuote is one exchange's last traded price for a symbol, observed
// during a single polling cycle. Price is always positive; an unavailable
// quote is represented by the absence of an entry, never by a zero price.
type PriceQuote struct {
	Exchange   ExchangeEnum
	Symbol     Symbol
	Price      float64
	ObservedAt time.Time
}

// PriceSet collects the quotes gathered for one symbol during one cycle.
// It is built fresh every cycle and never mixes quotes across cycles.
type PriceSet map[ExchangeEnum]PriceQuote
