package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"perp-spread-monitor/internal/domain"
)

const telegramAPIBaseURL = "https://api.telegram.org"

// Telegram posts alerts through the Bot API sendMessage endpoint.
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	http    *http.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPIBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *Telegram) Notify(ctx context.Context, opp domain.ArbitrageOpportunity) error {
	message := fmt.Sprintf(
		"🚨 Arbitrage: %s\n📊 Spread: %.2f%%\n💰 Buy on: %s - %.6f\n💰 Sell on: %s - %.6f",
		opp.Symbol, opp.Spread,
		opp.BuyExchange, opp.BuyPrice,
		opp.SellExchange, opp.SellPrice,
	)

	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       message,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}
	return nil
}
