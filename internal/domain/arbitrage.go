package domain

// ArbitrageOpportunity is derived from one symbol's PriceSet: buy on the
// cheapest venue, sell on the dearest. Spread is adjusted for both taker
// commissions; ProfitPotential is the raw fee-free difference, kept for
// reference only.
type ArbitrageOpportunity struct {
	Symbol          Symbol
	BuyExchange     ExchangeEnum
	SellExchange    ExchangeEnum
	BuyPrice        float64
	SellPrice       float64
	Spread          float64 // percent, fee-adjusted
	ProfitPotential float64 // percent, raw
	NetProfit       float64 // net sell minus net buy, absolute
}
