package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"perp-spread-monitor/internal/domain"
)

const gateBaseURL = "https://api.gateio.ws"

type GateExchange struct {
	client  *restClient
	baseURL string
}

type gateContract struct {
	Name string `json:"name"`
}

type gateTicker struct {
	Last json.Number `json:"last"`
}

func NewGate(client *restClient, baseURL string) *GateExchange {
	return &GateExchange{client: client, baseURL: baseURL}
}

func (e *GateExchange) Name() domain.ExchangeEnum {
	return domain.Gate
}

func (e *GateExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var contracts []gateContract
	url := e.baseURL + "/api/v4/futures/usdt/contracts"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &contracts); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(contracts))
	for _, contract := range contracts {
		if contract.Name != "" {
			symbols = append(symbols, domain.Normalize(contract.Name))
		}
	}
	return symbols, nil
}

func (e *GateExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var tickers []gateTicker
	// Gate spells contracts with an underscore before the quote currency.
	url := fmt.Sprintf("%s/api/v4/futures/usdt/tickers?contract=%s_USDT", e.baseURL, symbol.Base())
	if err := e.client.getJSON(ctx, url, tickerTimeout, &tickers); err != nil {
		return 0, err
	}
	if len(tickers) == 0 {
		return 0, nil
	}
	return parsePrice(tickers[0].Last)
}
