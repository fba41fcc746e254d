// Package snapshot serializes each cycle's top opportunities and summary
// counters into the artifact consumed by the external dashboard.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"perp-spread-monitor/internal/domain"
)

type Opportunity struct {
	Symbol       string  `json:"symbol"`
	Spread       string  `json:"spread"`
	BuyExchange  string  `json:"buy_exchange"`
	SellExchange string  `json:"sell_exchange"`
	BuyPrice     float64 `json:"buy_price"`
	SellPrice    float64 `json:"sell_price"`
}

type Snapshot struct {
	LastUpdate       string        `json:"last_update"`
	TotalPairs       int           `json:"total_pairs"`
	ProfitablePairs  int           `json:"profitable_pairs"`
	TopOpportunities []Opportunity `json:"top_opportunities"`
}

// Build assembles a cycle snapshot. profitable must already be sorted by
// spread descending; ProfitablePairs counts the whole eligible set even
// though the display list is capped at top entries.
func Build(at time.Time, totalPairs int, profitable []domain.ArbitrageOpportunity, top int) Snapshot {
	snap := Snapshot{
		LastUpdate:       at.Format("2006-01-02 15:04:05"),
		TotalPairs:       totalPairs,
		ProfitablePairs:  len(profitable),
		TopOpportunities: make([]Opportunity, 0, top),
	}
	for i, opp := range profitable {
		if i >= top {
			break
		}
		snap.TopOpportunities = append(snap.TopOpportunities, Opportunity{
			Symbol:       opp.Symbol.String(),
			Spread:       fmt.Sprintf("%.2f%%", opp.Spread),
			BuyExchange:  opp.BuyExchange.String(),
			SellExchange: opp.SellExchange.String(),
			BuyPrice:     opp.BuyPrice,
			SellPrice:    opp.SellPrice,
		})
	}
	return snap
}

// Writer publishes snapshots to a JSON file. Each publish writes the
// complete document to a temp file and renames it over the target, so
// readers only ever observe the old or the new snapshot, never a mix.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Publish(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}
