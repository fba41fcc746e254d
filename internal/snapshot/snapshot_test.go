package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-spread-monitor/internal/domain"
)

func TestBuildCapsDisplayNotCount(t *testing.T) {
	profitable := make([]domain.ArbitrageOpportunity, 15)
	for i := range profitable {
		profitable[i] = domain.ArbitrageOpportunity{
			Symbol:       domain.Symbol(string(rune('A'+i)) + "USDT"),
			BuyExchange:  domain.Bybit,
			SellExchange: domain.Gate,
			Spread:       float64(15 - i),
		}
	}
	at := time.Date(2026, 8, 29, 9, 30, 5, 0, time.UTC)

	snap := Build(at, 200, profitable, 10)

	assert.Equal(t, "2026-08-29 09:30:05", snap.LastUpdate)
	assert.Equal(t, 200, snap.TotalPairs)
	assert.Equal(t, 15, snap.ProfitablePairs)
	require.Len(t, snap.TopOpportunities, 10)
	assert.Equal(t, "15.00%", snap.TopOpportunities[0].Spread)
	assert.Equal(t, "Bybit", snap.TopOpportunities[0].BuyExchange)
}

func TestBuildEmptyCycle(t *testing.T) {
	snap := Build(time.Now(), 120, nil, 10)

	assert.Equal(t, 0, snap.ProfitablePairs)
	assert.NotNil(t, snap.TopOpportunities)
	assert.Empty(t, snap.TopOpportunities)
}

func TestWriterReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbitrage_data.json")
	w := NewWriter(path)

	first := Build(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), 100, nil, 10)
	require.NoError(t, w.Publish(first))

	second := Build(time.Date(2026, 8, 29, 10, 0, 30, 0, time.UTC), 150, []domain.ArbitrageOpportunity{
		{Symbol: "BTCUSDT", BuyExchange: domain.Bybit, SellExchange: domain.OKX, Spread: 2.5, BuyPrice: 100, SellPrice: 102.5},
	}, 10)
	require.NoError(t, w.Publish(second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2026-08-29 10:00:30", got.LastUpdate)
	assert.Equal(t, 150, got.TotalPairs)
	require.Len(t, got.TopOpportunities, 1)
	assert.Equal(t, "2.50%", got.TopOpportunities[0].Spread)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
