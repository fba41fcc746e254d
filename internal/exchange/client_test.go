package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-spread-monitor/internal/domain"
)

// newTestClient builds a restClient with near-zero pacing and no jitter so
// httptest-backed adapter tests run fast.
func newTestClient(name domain.ExchangeEnum, retry RetryPolicy) *restClient {
	pacer := NewPacer(nil, time.Millisecond)
	pacer.jitter = 0
	return &restClient{
		name:    name,
		http:    &http.Client{},
		pacer:   pacer,
		breaker: newBreaker(name.String()),
		retry:   retry,
	}
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": "42"}`))
	}))
	defer srv.Close()

	c := newTestClient(domain.Bybit, RetryPolicy{})
	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, c.getJSON(context.Background(), srv.URL, time.Second, &out))
	assert.Equal(t, "42", out.Value)
}

func TestGetJSONRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(domain.Bybit, RetryPolicy{})
	var out map[string]any
	err := c.getJSON(context.Background(), srv.URL, time.Second, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestGetJSONRetriesOnThrottle(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(domain.BingX, RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})
	var out map[string]any
	require.NoError(t, c.getJSON(context.Background(), srv.URL, time.Second, &out))
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetJSONGivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(domain.BingX, RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond})
	var out map[string]any
	err := c.getJSON(context.Background(), srv.URL, time.Second, &out)
	require.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetJSONNoRetryByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(domain.Gate, RetryPolicy{})
	var out map[string]any
	err := c.getJSON(context.Background(), srv.URL, time.Second, &out)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	srv.Close() // every request now fails at the transport level

	c := newTestClient(domain.Huobi, RetryPolicy{})
	var out map[string]any
	for i := 0; i < 5; i++ {
		require.Error(t, c.getJSON(context.Background(), srv.URL, time.Second, &out))
	}

	err := c.getJSON(context.Background(), srv.URL, time.Second, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestParsePrice(t *testing.T) {
	price, err := parsePrice("123.45")
	require.NoError(t, err)
	assert.Equal(t, 123.45, price)

	price, err = parsePrice("")
	require.NoError(t, err)
	assert.Zero(t, price)

	_, err = parsePrice("not-a-number")
	assert.Error(t, err)
}
