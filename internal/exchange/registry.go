package exchange

import (
	"net/http"
	"time"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/config"
)

// Registry maps each supported exchange to its adapter. Adding a venue
// means registering a new adapter here, nothing more.
type Registry map[domain.ExchangeEnum]domain.Exchanger

// NewRegistry wires every adapter with a shared HTTP client and pacer plus
// a per-exchange circuit breaker. BingX is the only adapter with a retry
// policy; everyone else treats a 429 like any other transport failure.
func NewRegistry(settings config.Settings) Registry {
	httpClient := &http.Client{}
	pacer := NewPacer(settings.Delays, settings.DefaultDelay)

	newClient := func(name domain.ExchangeEnum, retry RetryPolicy) *restClient {
		return &restClient{
			name:    name,
			http:    httpClient,
			pacer:   pacer,
			breaker: newBreaker(name.String()),
			retry:   retry,
		}
	}

	return Registry{
		domain.Bybit:  NewBybit(newClient(domain.Bybit, RetryPolicy{}), bybitBaseURL),
		domain.Gate:   NewGate(newClient(domain.Gate, RetryPolicy{}), gateBaseURL),
		domain.MEXC:   NewMEXC(newClient(domain.MEXC, RetryPolicy{}), mexcBaseURL),
		domain.Huobi:  NewHuobi(newClient(domain.Huobi, RetryPolicy{}), huobiBaseURL),
		domain.BingX:  NewBingX(newClient(domain.BingX, RetryPolicy{MaxAttempts: 3, Backoff: 10 * time.Second}), bingxBaseURL),
		domain.Bitget: NewBitget(newClient(domain.Bitget, RetryPolicy{}), bitgetBaseURL),
		domain.OKX:    NewOKX(newClient(domain.OKX, RetryPolicy{}), okxBaseURL),
	}
}

// Adapters returns the registered adapters in registry order.
func (r Registry) Adapters() []domain.Exchanger {
	adapters := make([]domain.Exchanger, 0, len(r))
	for _, name := range domain.AllExchanges() {
		if adapter, ok := r[name]; ok {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}
