package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"perp-spread-monitor/internal/domain"
)

const bybitBaseURL = "https://api.bybit.com"

type BybitExchange struct {
	client  *restClient
	baseURL string
}

type bybitTickersResponse struct {
	Result struct {
		List []struct {
			Symbol    string      `json:"symbol"`
			LastPrice json.Number `json:"lastPrice"`
		} `json:"list"`
	} `json:"result"`
}

func NewBybit(client *restClient, baseURL string) *BybitExchange {
	return &BybitExchange{client: client, baseURL: baseURL}
}

func (e *BybitExchange) Name() domain.ExchangeEnum {
	return domain.Bybit
}

func (e *BybitExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp bybitTickersResponse
	url := e.baseURL + "/v5/market/tickers?category=linear"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Result.List))
	for _, item := range resp.Result.List {
		if strings.HasSuffix(item.Symbol, "USDT") {
			symbols = append(symbols, domain.Normalize(item.Symbol))
		}
	}
	return symbols, nil
}

func (e *BybitExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp bybitTickersResponse
	url := fmt.Sprintf("%s/v5/market/tickers?category=linear&symbol=%s", e.baseURL, symbol)
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	if len(resp.Result.List) == 0 {
		return 0, nil
	}
	return parsePrice(resp.Result.List[0].LastPrice)
}
