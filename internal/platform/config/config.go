package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"perp-spread-monitor/internal/domain"
)

// Config holds the operator-tunable values persisted to disk. It is loaded
// at startup (missing file means built-in defaults) and saved back at
// shutdown so threshold changes survive restarts.
type Config struct {
	Blacklist             []string `json:"BLACKLIST"`
	NotificationThreshold float64  `json:"NOTIFICATION_THRESHOLD"`
	MinSpreadThreshold    float64  `json:"MIN_SPREAD_THRESHOLD"`
	MaxSpreadThreshold    float64  `json:"MAX_SPREAD_THRESHOLD"`
	LiquidityThreshold    float64  `json:"LIQUIDITY_THRESHOLD"`
}

func Default() *Config {
	return &Config{
		Blacklist: []string{
			"XEMUSDT", "SNTUSDT", "WAVESUSDT", "USDCUSDT", "TUSDUSDT",
			"BTTUSDT", "JSTUSDT", "PERLUSDT", "NEXOUSDT", "HOTUSDT",
		},
		NotificationThreshold: 2.0,
		MinSpreadThreshold:    1.0,
		MaxSpreadThreshold:    10.0,
		LiquidityThreshold:    0,
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// IsBlacklisted reports whether sym matches a blacklist entry. Entries are
// normalized before comparison so the file may spell them loosely.
func (c *Config) IsBlacklisted(sym domain.Symbol) bool {
	for _, entry := range c.Blacklist {
		if domain.Normalize(entry) == sym {
			return true
		}
	}
	return false
}

// Settings are the fixed engine parameters: polling cadence, concurrency
// bounds, per-exchange commissions and request pacing. They carry built-in
// defaults and are not persisted.
type Settings struct {
	RefreshRate          time.Duration
	MinCycleGap          time.Duration
	UniverseRefresh      time.Duration
	NotificationCooldown time.Duration

	MaxConcurrentRequests int64

	// Tracked universe sizing: the limit starts at MaxTrackedPairs and is
	// stepped between the floor and ceiling by the adaptive controller.
	MaxTrackedPairs   int
	TrackedPairsFloor int
	TrackedPairsCeil  int
	GrowStep          int
	ShrinkStep        int
	GrowBelow         int
	ShrinkAbove       int

	TopOpportunities int
	MaxPairsToShow   int

	Commissions  map[domain.ExchangeEnum]float64
	Delays       map[domain.ExchangeEnum]time.Duration
	DefaultDelay time.Duration

	ConfigFile   string
	SnapshotFile string
	AuditDir     string
	HistoryFile  string
}

func DefaultSettings() Settings {
	return Settings{
		RefreshRate:          30 * time.Second,
		MinCycleGap:          10 * time.Second,
		UniverseRefresh:      30 * time.Minute,
		NotificationCooldown: 300 * time.Second,

		MaxConcurrentRequests: 50,

		MaxTrackedPairs:   200,
		TrackedPairsFloor: 100,
		TrackedPairsCeil:  2500,
		GrowStep:          100,
		ShrinkStep:        20,
		GrowBelow:         10,
		ShrinkAbove:       30,

		TopOpportunities: 10,
		MaxPairsToShow:   20,

		Commissions: map[domain.ExchangeEnum]float64{
			domain.Bybit:  0.0004,
			domain.Gate:   0.0003,
			domain.MEXC:   0.0004,
			domain.Huobi:  0.0004,
			domain.BingX:  0.0004,
			domain.Bitget: 0.0004,
			domain.OKX:    0.0004,
		},
		Delays: map[domain.ExchangeEnum]time.Duration{
			domain.BingX:  3 * time.Second,
			domain.OKX:    500 * time.Millisecond,
			domain.Huobi:  500 * time.Millisecond,
			domain.Bitget: 500 * time.Millisecond,
		},
		DefaultDelay: 300 * time.Millisecond,

		ConfigFile:   "bot_config.json",
		SnapshotFile: "arbitrage_data.json",
		AuditDir:     ".",
		HistoryFile:  "arbitrage_history.db",
	}
}
