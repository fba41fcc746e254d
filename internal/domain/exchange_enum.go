package domain

type ExchangeEnum int

const (
	Bybit ExchangeEnum = iota
	Gate
	MEXC
	Huobi
	BingX
	Bitget
	OKX
)

func (e ExchangeEnum) String() string {
	return []string{"Bybit", "Gate", "MEXC", "Huobi", "BingX", "Bitget", "OKX"}[e]
}

// AllExchanges lists every supported exchange in registry order. This order
// also breaks ties when two venues quote the same price.
func AllExchanges() []ExchangeEnum {
	return []ExchangeEnum{Bybit, Gate, MEXC, Huobi, BingX, Bitget, OKX}
}
