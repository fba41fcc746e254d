// Package history persists dispatched alerts to sqlite so operators can
// review past opportunities across restarts.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"perp-spread-monitor/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS opportunities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	notified_at TEXT NOT NULL,
	symbol TEXT NOT NULL,
	spread REAL NOT NULL,
	buy_exchange TEXT NOT NULL,
	buy_price REAL NOT NULL,
	sell_exchange TEXT NOT NULL,
	sell_price REAL NOT NULL,
	profit_potential REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_opportunities_symbol ON opportunities(symbol);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, opp domain.ArbitrageOpportunity, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO opportunities
		(notified_at, symbol, spread, buy_exchange, buy_price, sell_exchange, sell_price, profit_potential)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		at.Format(time.RFC3339),
		opp.Symbol.String(),
		opp.Spread,
		opp.BuyExchange.String(),
		opp.BuyPrice,
		opp.SellExchange.String(),
		opp.SellPrice,
		opp.ProfitPotential,
	)
	return err
}

// Entry mirrors one recorded alert.
type Entry struct {
	NotifiedAt      string  `json:"notified_at"`
	Symbol          string  `json:"symbol"`
	Spread          float64 `json:"spread"`
	BuyExchange     string  `json:"buy_exchange"`
	BuyPrice        float64 `json:"buy_price"`
	SellExchange    string  `json:"sell_exchange"`
	SellPrice       float64 `json:"sell_price"`
	ProfitPotential float64 `json:"profit_potential"`
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		notified_at, symbol, spread, buy_exchange, buy_price, sell_exchange, sell_price, profit_potential
		FROM opportunities ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.NotifiedAt, &e.Symbol, &e.Spread,
			&e.BuyExchange, &e.BuyPrice,
			&e.SellExchange, &e.SellPrice,
			&e.ProfitPotential,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
