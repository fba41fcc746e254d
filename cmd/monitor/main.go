package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"perp-spread-monitor/internal/arbitrage"
	"perp-spread-monitor/internal/audit"
	"perp-spread-monitor/internal/exchange"
	"perp-spread-monitor/internal/history"
	"perp-spread-monitor/internal/notify"
	"perp-spread-monitor/internal/platform/config"
	"perp-spread-monitor/internal/platform/logger"
	"perp-spread-monitor/internal/server"
	"perp-spread-monitor/internal/snapshot"
)

var Logger = logger.Get()

// fanout sends each cycle's snapshot to the artifact file and the status
// server. The file write is the authoritative publish; server push errors
// cannot occur.
type fanout struct {
	writer *snapshot.Writer
	server *server.FiberServer
}

func (f fanout) Publish(snap snapshot.Snapshot) error {
	if f.server != nil {
		f.server.Publish(snap)
	}
	return f.writer.Publish(snap)
}

func main() {
	settings := config.DefaultSettings()

	cfg, err := config.Load(settings.ConfigFile)
	if err != nil {
		Logger.Fatal("failed to load config", zap.Error(err))
	}

	registry := exchange.NewRegistry(settings)

	var channels notify.Multi
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		channels = append(channels, notify.NewDiscord(url))
	}
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		channels = append(channels, notify.NewTelegram(token, os.Getenv("TELEGRAM_CHAT_ID")))
	}
	var notifier arbitrage.Notifier
	if len(channels) > 0 {
		notifier = channels
	} else {
		Logger.Warn("no notification channels configured, alerts disabled")
	}

	var historyStore arbitrage.HistoryStore
	store, err := history.Open(settings.HistoryFile)
	if err != nil {
		Logger.Warn("history store unavailable", zap.Error(err))
	} else {
		historyStore = store
		defer store.Close()
	}

	srv := server.New(store)
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		if err := srv.Listen(":" + port); err != nil {
			Logger.Error("http server stopped", zap.Error(err))
		}
	}()

	controller := arbitrage.NewController(cfg, settings, notifier, audit.New(settings.AuditDir), historyStore)
	engine := arbitrage.NewEngine(cfg, settings, registry.Adapters(), controller, fanout{
		writer: snapshot.NewWriter(settings.SnapshotFile),
		server: srv,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
		Logger.Error("engine stopped", zap.Error(err))
	}
	Logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		Logger.Error("server forced to shutdown", zap.Error(err))
	}

	if err := cfg.Save(settings.ConfigFile); err != nil {
		Logger.Error("failed to save config", zap.Error(err))
	} else {
		Logger.Info("config saved")
	}
}
