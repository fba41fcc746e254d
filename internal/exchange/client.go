package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/platform/logger"
)

const (
	tickerTimeout    = 15 * time.Second
	discoveryTimeout = 20 * time.Second
)

var Logger = logger.Get()
var ScrapingLogger = logger.GetScrapingLogger()

// RetryPolicy bounds re-attempts after a rate-limit response. Attempt n
// waits n*Backoff before retrying. The zero value never retries, which is
// the policy for every adapter except the ones known to throttle hard.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// restClient is the HTTP plumbing shared by all adapters: request pacing,
// a circuit breaker, bounded timeouts, and throttle-aware retry. All
// endpoints used by the engine are public read-only ticker/instrument
// routes, so no authentication is attached.
type restClient struct {
	name    domain.ExchangeEnum
	http    *http.Client
	pacer   *Pacer
	breaker *gobreaker.CircuitBreaker
	retry   RetryPolicy
}

type httpResult struct {
	status int
	body   []byte
}

// getJSON fetches url and decodes the body into out. Non-200 responses and
// unparseable payloads come back as errors; every caller degrades them to
// "no quote" or "empty discovery list".
func (c *restClient) getJSON(ctx context.Context, url string, timeout time.Duration, out any) error {
	if err := c.pacer.Wait(ctx, c.name); err != nil {
		return err
	}

	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := c.doOnce(ctx, url, timeout)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}

		if result.status == http.StatusTooManyRequests && attempt < attempts {
			wait := time.Duration(attempt) * c.retry.Backoff
			Logger.Warn("rate limited, backing off",
				zap.String("exchange", c.name.String()),
				zap.Duration("wait", wait),
				zap.Int("attempt", attempt))
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if result.status != http.StatusOK {
			return fmt.Errorf("%s: unexpected status %d", c.name, result.status)
		}
		if err := json.Unmarshal(result.body, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", c.name, err)
		}
		return nil
	}
	return fmt.Errorf("%s: rate limited after %d attempts", c.name, attempts)
}

func (c *restClient) doOnce(ctx context.Context, url string, timeout time.Duration) (*httpResult, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		ScrapingLogger.Info(string(body))
		return &httpResult{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*httpResult), nil
}

// parsePrice converts a ticker price field to float64. Exchanges disagree on
// whether prices are JSON strings or numbers, so adapters decode them as
// json.Number and funnel through here.
func parsePrice(raw json.Number) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	price, err := raw.Float64()
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}
