package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-spread-monitor/internal/domain"
	"perp-spread-monitor/internal/snapshot"
)

func doRequest(t *testing.T, s *FiberServer, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestHealthRoute(t *testing.T) {
	s := New(nil)

	resp, body := doRequest(t, s, "/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestArbitrageRouteBeforeFirstCycle(t *testing.T) {
	s := New(nil)

	resp, _ := doRequest(t, s, "/api/arbitrage")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArbitrageRouteServesLatestSnapshot(t *testing.T) {
	s := New(nil)

	snap := snapshot.Build(
		time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC), 180,
		[]domain.ArbitrageOpportunity{
			{Symbol: "BTCUSDT", BuyExchange: domain.Bybit, SellExchange: domain.OKX, Spread: 2.5, BuyPrice: 100, SellPrice: 102.5},
		}, 10)
	require.NoError(t, s.Publish(snap))

	resp, body := doRequest(t, s, "/api/arbitrage")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got snapshot.Snapshot
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "2026-08-29 16:00:00", got.LastUpdate)
	assert.Equal(t, 180, got.TotalPairs)
	require.Len(t, got.TopOpportunities, 1)
	assert.Equal(t, "2.50%", got.TopOpportunities[0].Spread)
}

func TestPublishReplacesSnapshot(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Publish(snapshot.Build(time.Now(), 100, nil, 10)))
	require.NoError(t, s.Publish(snapshot.Build(time.Now(), 250, nil, 10)))

	_, body := doRequest(t, s, "/api/arbitrage")

	var got snapshot.Snapshot
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 250, got.TotalPairs)
}

func TestHistoryRouteWithoutStore(t *testing.T) {
	s := New(nil)

	resp, body := doRequest(t, s, "/api/history")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestWSRouteRequiresUpgrade(t *testing.T) {
	s := New(nil)

	resp, _ := doRequest(t, s, "/ws")

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
