package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"perp-spread-monitor/internal/domain"
)

const okxBaseURL = "https://www.okx.com"

type OKXExchange struct {
	client  *restClient
	baseURL string
}

type okxInstrumentsResponse struct {
	Data []struct {
		InstType string `json:"instType"`
		InstID   string `json:"instId"`
	} `json:"data"`
}

type okxTickerResponse struct {
	Data []struct {
		Last json.Number `json:"last"`
	} `json:"data"`
}

func NewOKX(client *restClient, baseURL string) *OKXExchange {
	return &OKXExchange{client: client, baseURL: baseURL}
}

func (e *OKXExchange) Name() domain.ExchangeEnum {
	return domain.OKX
}

func (e *OKXExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp okxInstrumentsResponse
	url := e.baseURL + "/api/v5/public/instruments?instType=SWAP"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Data))
	for _, inst := range resp.Data {
		if inst.InstType == "SWAP" && strings.Contains(inst.InstID, "-USDT-SWAP") {
			symbols = append(symbols, domain.Normalize(strings.TrimSuffix(inst.InstID, "-SWAP")))
		}
	}
	return symbols, nil
}

func (e *OKXExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp okxTickerResponse
	url := fmt.Sprintf("%s/api/v5/market/ticker?instId=%s-USDT-SWAP", e.baseURL, symbol.Base())
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	if len(resp.Data) == 0 {
		return 0, nil
	}
	return parsePrice(resp.Data[0].Last)
}
