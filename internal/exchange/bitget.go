package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"perp-spread-monitor/internal/domain"
)

const bitgetBaseURL = "https://api.bitget.com"

type BitgetExchange struct {
	client  *restClient
	baseURL string
}

type bitgetContractsResponse struct {
	Data []struct {
		Symbol    string `json:"symbol"`
		QuoteCoin string `json:"quoteCoin"`
	} `json:"data"`
}

type bitgetTickerResponse struct {
	Data *struct {
		Last json.Number `json:"last"`
	} `json:"data"`
}

func NewBitget(client *restClient, baseURL string) *BitgetExchange {
	return &BitgetExchange{client: client, baseURL: baseURL}
}

func (e *BitgetExchange) Name() domain.ExchangeEnum {
	return domain.Bitget
}

func (e *BitgetExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp bitgetContractsResponse
	url := e.baseURL + "/api/swap/v3/market/contracts"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Data))
	for _, contract := range resp.Data {
		if contract.QuoteCoin == "USDT" && contract.Symbol != "" {
			symbols = append(symbols, domain.Normalize(contract.Symbol))
		}
	}
	return symbols, nil
}

func (e *BitgetExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp bitgetTickerResponse
	url := fmt.Sprintf("%s/api/swap/v3/market/ticker?symbol=%s", e.baseURL, symbol)
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	// Unknown contracts come back with a null data field.
	if resp.Data == nil {
		return 0, nil
	}
	return parsePrice(resp.Data.Last)
}
