package arbitrage

import (
	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/logger"
)

var Logger = logger.Get()

const defaultCommission = 0.0004

// Fees maps each exchange to its flat taker commission fraction.
type Fees map[domain.ExchangeEnum]float64

func (f Fees) rate(exchange domain.ExchangeEnum) float64 {
	if rate, ok := f[exchange]; ok {
		return rate
	}
	return defaultCommission
}

// Analyze computes the best buy/sell pair for one symbol's cycle quotes.
// It needs at least two quotes; anything less is "no opportunity", a normal
// outcome rather than an error. The fee-adjusted spread is the single
// ranking and filtering key everywhere downstream.
func Analyze(symbol domain.Symbol, prices domain.PriceSet, fees Fees) (domain.ArbitrageOpportunity, bool) {
	if len(prices) < 2 {
		return domain.ArbitrageOpportunity{}, false
	}

	var buy, sell domain.ExchangeEnum
	first := true
	for _, exchange := range domain.AllExchanges() {
		quote, ok := prices[exchange]
		if !ok {
			continue
		}
		if first {
			buy, sell = exchange, exchange
			first = false
			continue
		}
		if quote.Price < prices[buy].Price {
			buy = exchange
		}
		if quote.Price > prices[sell].Price {
			sell = exchange
		}
	}

	buyPrice := prices[buy].Price
	sellPrice := prices[sell].Price

	netBuy := buyPrice * (1 + fees.rate(buy))
	netSell := sellPrice * (1 - fees.rate(sell))
	if netBuy <= 0 {
		return domain.ArbitrageOpportunity{}, false
	}

	return domain.ArbitrageOpportunity{
		Symbol:          symbol,
		BuyExchange:     buy,
		SellExchange:    sell,
		BuyPrice:        buyPrice,
		SellPrice:       sellPrice,
		Spread:          (netSell - netBuy) / netBuy * 100,
		ProfitPotential: (sellPrice - buyPrice) / buyPrice * 100,
		NetProfit:       netSell - netBuy,
	}, true
}
