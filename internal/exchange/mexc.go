package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"perp-spread-monitor/internal/domain"
)

const mexcBaseURL = "https://contract.mexc.com"

type MEXCExchange struct {
	client  *restClient
	baseURL string
}

// The contract ticker endpoint returns a list without a symbol filter and a
// single object with one, hence the two response shapes.
type mexcTickerListResponse struct {
	Data []struct {
		Symbol string `json:"symbol"`
	} `json:"data"`
}

type mexcTickerResponse struct {
	Data struct {
		LastPrice json.Number `json:"lastPrice"`
	} `json:"data"`
}

func NewMEXC(client *restClient, baseURL string) *MEXCExchange {
	return &MEXCExchange{client: client, baseURL: baseURL}
}

func (e *MEXCExchange) Name() domain.ExchangeEnum {
	return domain.MEXC
}

func (e *MEXCExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp mexcTickerListResponse
	url := e.baseURL + "/api/v1/contract/ticker"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.Symbol != "" {
			symbols = append(symbols, domain.Normalize(item.Symbol))
		}
	}
	return symbols, nil
}

func (e *MEXCExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp mexcTickerResponse
	url := fmt.Sprintf("%s/api/v1/contract/ticker?symbol=%s_USDT", e.baseURL, symbol.Base())
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Data.LastPrice)
}
