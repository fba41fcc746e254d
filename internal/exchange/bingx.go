package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"perp-spread-monitor/internal/domain"
)

const bingxBaseURL = "https://open-api.bingx.com"

// BingXExchange throttles far more aggressively than the other venues, so
// its restClient carries a non-zero RetryPolicy and the longest pacing
// delay in the registry.
type BingXExchange struct {
	client  *restClient
	baseURL string
}

type bingxContractsResponse struct {
	Data []struct {
		Symbol string `json:"symbol"`
	} `json:"data"`
}

type bingxTickerResponse struct {
	Data struct {
		LastPrice json.Number `json:"lastPrice"`
	} `json:"data"`
}

func NewBingX(client *restClient, baseURL string) *BingXExchange {
	return &BingXExchange{client: client, baseURL: baseURL}
}

func (e *BingXExchange) Name() domain.ExchangeEnum {
	return domain.BingX
}

func (e *BingXExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp bingxContractsResponse
	url := e.baseURL + "/openApi/swap/v2/quote/contracts"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Data))
	for _, contract := range resp.Data {
		if strings.HasSuffix(contract.Symbol, "-USDT") {
			symbols = append(symbols, domain.Normalize(contract.Symbol))
		}
	}
	return symbols, nil
}

func (e *BingXExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp bingxTickerResponse
	url := fmt.Sprintf("%s/openApi/swap/v2/quote/ticker?contract=%s-USDT", e.baseURL, symbol.Base())
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Data.LastPrice)
}
