// Package audit appends one CSV row per dispatched alert to a
// day-partitioned log file.
package audit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"perp-spread-monitor/internal/domain"
)

var header = []string{
	"timestamp", "symbol", "spread",
	"buy_exchange", "buy_price",
	"sell_exchange", "sell_price",
	"profit_potential",
}

// Log writes to one file per calendar day, creating it with a header row on
// the first write of the day. Rows are either written completely or not at
// all; a failed append never leaves a partial record behind the flush.
type Log struct {
	dir string
}

func New(dir string) *Log {
	return &Log{dir: dir}
}

func (l *Log) Append(opp domain.ArbitrageOpportunity, at time.Time) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(l.dir, fmt.Sprintf("arbitrage_log_%s.csv", at.Format("20060102")))

	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		at.Format("2006-01-02 15:04:05"),
		opp.Symbol.String(),
		fmt.Sprintf("%.4f%%", opp.Spread),
		opp.BuyExchange.String(),
		strconv.FormatFloat(opp.BuyPrice, 'f', -1, 64),
		opp.SellExchange.String(),
		strconv.FormatFloat(opp.SellPrice, 'f', -1, 64),
		fmt.Sprintf("%.4f%%", opp.ProfitPotential),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
