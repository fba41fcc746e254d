package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"perp-spread-monitor/internal/domain"
)

const huobiBaseURL = "https://api.hbdm.com"

type HuobiExchange struct {
	client  *restClient
	baseURL string
}

type huobiContractInfoResponse struct {
	Data []struct {
		ContractCode string `json:"contract_code"`
	} `json:"data"`
}

type huobiMergedTickerResponse struct {
	Tick struct {
		Close json.Number `json:"close"`
	} `json:"tick"`
}

func NewHuobi(client *restClient, baseURL string) *HuobiExchange {
	return &HuobiExchange{client: client, baseURL: baseURL}
}

func (e *HuobiExchange) Name() domain.ExchangeEnum {
	return domain.Huobi
}

func (e *HuobiExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	var resp huobiContractInfoResponse
	url := e.baseURL + "/linear-swap-api/v1/swap_contract_info"
	if err := e.client.getJSON(ctx, url, discoveryTimeout, &resp); err != nil {
		return nil, err
	}

	symbols := make([]domain.Symbol, 0, len(resp.Data))
	for _, contract := range resp.Data {
		if contract.ContractCode != "" {
			symbols = append(symbols, domain.Normalize(contract.ContractCode))
		}
	}
	return symbols, nil
}

func (e *HuobiExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	var resp huobiMergedTickerResponse
	url := fmt.Sprintf("%s/linear-swap-ex/market/detail/merged?contract_code=%s-USDT", e.baseURL, symbol.Base())
	if err := e.client.getJSON(ctx, url, tickerTimeout, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Tick.Close)
}
