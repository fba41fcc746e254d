package universe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perp-spread-monitor/internal/domain"
)

func noBlacklist(domain.Symbol) bool { return false }

func TestBuildRequiresTwoVenues(t *testing.T) {
	lists := [][]domain.Symbol{
		{"BTCUSDT", "ETHUSDT", "XRPUSDT"},
		{"BTCUSDT", "ETHUSDT"},
		{"BTCUSDT"},
	}

	got := Build(lists, noBlacklist, 0)

	assert.Equal(t, []domain.Symbol{"BTCUSDT", "ETHUSDT"}, got)
}

func TestBuildRanksByAvailability(t *testing.T) {
	lists := [][]domain.Symbol{
		{"AAAUSDT", "BBBUSDT"},
		{"AAAUSDT", "BBBUSDT"},
		{"BBBUSDT"},
	}

	got := Build(lists, noBlacklist, 0)

	require.Len(t, got, 2)
	assert.Equal(t, domain.Symbol("BBBUSDT"), got[0])
	assert.Equal(t, domain.Symbol("AAAUSDT"), got[1])
}

func TestBuildAppliesBlacklist(t *testing.T) {
	lists := [][]domain.Symbol{
		{"BTCUSDT", "HOTUSDT"},
		{"BTCUSDT", "HOTUSDT"},
	}
	blacklisted := func(s domain.Symbol) bool { return s == "HOTUSDT" }

	got := Build(lists, blacklisted, 0)

	assert.Equal(t, []domain.Symbol{"BTCUSDT"}, got)
}

func TestBuildTruncatesToLimit(t *testing.T) {
	lists := [][]domain.Symbol{
		{"AAAUSDT", "BBBUSDT", "CCCUSDT"},
		{"AAAUSDT", "BBBUSDT", "CCCUSDT"},
	}

	got := Build(lists, noBlacklist, 2)

	assert.Len(t, got, 2)
}

func TestBuildToleratesNilLists(t *testing.T) {
	lists := [][]domain.Symbol{
		nil,
		{"BTCUSDT"},
		{"BTCUSDT"},
		nil,
	}

	got := Build(lists, noBlacklist, 0)

	assert.Equal(t, []domain.Symbol{"BTCUSDT"}, got)
}

func TestBuildNormalizesRawSpellings(t *testing.T) {
	lists := [][]domain.Symbol{
		{"btc-usdt"},
		{"BTC_USDT"},
	}

	got := Build(lists, noBlacklist, 0)

	assert.Equal(t, []domain.Symbol{"BTCUSDT"}, got)
}

type fakeExchange struct {
	name    domain.ExchangeEnum
	symbols []domain.Symbol
	err     error
}

func (f *fakeExchange) Name() domain.ExchangeEnum { return f.name }

func (f *fakeExchange) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	return f.symbols, f.err
}

func (f *fakeExchange) Price(ctx context.Context, symbol domain.Symbol) (float64, error) {
	return 0, nil
}

func TestDiscoverIsolatesFailures(t *testing.T) {
	adapters := []domain.Exchanger{
		&fakeExchange{name: domain.Bybit, symbols: []domain.Symbol{"BTCUSDT", "ETHUSDT"}},
		&fakeExchange{name: domain.Gate, err: errors.New("connection refused")},
		&fakeExchange{name: domain.OKX, symbols: []domain.Symbol{"BTCUSDT", "ETHUSDT"}},
	}

	lists := Discover(context.Background(), adapters)

	require.Len(t, lists, 3)
	assert.Nil(t, lists[1])

	// The broken venue must not reduce the counts the others contributed.
	got := Build(lists, noBlacklist, 0)
	assert.ElementsMatch(t, []domain.Symbol{"BTCUSDT", "ETHUSDT"}, got)
}
