// Package domain defines the shared vocabulary of the monitor: symbols,
// exchange identity, price quotes and the opportunity record. Everything
// here is plain data; behavior lives in the packages around it.
package domain

import "strings"

// Symbol is a normalized USDT-quoted contract identifier, e.g. "BTCUSDT".
// Every adapter converts its native spelling through Normalize before the
// symbol enters the rest of the system, so comparisons across exchanges
// are always exact string equality.
type Symbol string

// Normalize canonicalizes an exchange's native contract spelling:
// uppercase, separators removed, USDT suffix enforced.
func Normalize(raw string) Symbol {
	s := strings.ToUpper(raw)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	if !strings.HasSuffix(s, "USDT") {
		s += "USDT"
	}
	return Symbol(s)
}

// Base returns the symbol without the USDT quote suffix. Adapters use it
// to rebuild their native spellings ("BTC_USDT", "BTC-USDT-SWAP").
func (s Symbol) Base() string {
	return strings.TrimSuffix(string(s), "USDT")
}

func (s Symbol) String() string {
	return string(s)
}
