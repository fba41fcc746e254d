package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/webhook"

	"perp-spread-monitor/internal/domain"
)

// Discord posts alerts to a webhook as an embed.
type Discord struct {
	webhookURL string
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{webhookURL: webhookURL}
}

func (d *Discord) Notify(ctx context.Context, opp domain.ArbitrageOpportunity) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := webhook.NewWithURL(d.webhookURL)
	if err != nil {
		return fmt.Errorf("create discord client: %w", err)
	}
	defer client.Close(ctx)

	_, err = client.CreateEmbeds([]discord.Embed{
		discord.NewEmbedBuilder().
			SetTitle("Arbitrage opportunity found").
			SetColor(0x00ff00).
			AddField("Symbol", opp.Symbol.String(), true).
			AddField("Spread", fmt.Sprintf("%.2f%%", opp.Spread), true).
			AddField("​", "​", false).
			AddField("Buy On", opp.BuyExchange.String(), true).
			AddField("Buy Price", fmt.Sprintf("%.6f", opp.BuyPrice), true).
			AddField("​", "​", false).
			AddField("Sell On", opp.SellExchange.String(), true).
			AddField("Sell Price", fmt.Sprintf("%.6f", opp.SellPrice), true).
			Build()})
	if err != nil {
		return fmt.Errorf("send discord alert: %w", err)
	}
	return nil
}
