// Package server exposes the engine's published artifacts to dashboard
// consumers: the latest snapshot over REST and websocket, plus the alert
// history. It never influences engine behavior; it only reads what the
// engine publishes.
package server

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"perp-spread-monitor/internal/history"
	"perp-spread-monitor/internal/snapshot"
)

type FiberServer struct {
	*fiber.App

	mu      sync.RWMutex
	latest  snapshot.Snapshot
	hasData bool
	subs    map[chan snapshot.Snapshot]struct{}

	history *history.Store
}

func New(store *history.Store) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "perp-spread-monitor",
			AppName:      "perp-spread-monitor",
		}),
		subs:    make(map[chan snapshot.Snapshot]struct{}),
		history: store,
	}
	server.registerRoutes()
	return server
}

func (s *FiberServer) registerRoutes() {
	s.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.Get("/api/arbitrage", func(c *fiber.Ctx) error {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.hasData {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no snapshot yet"})
		}
		return c.JSON(s.latest)
	})

	s.Get("/api/history", func(c *fiber.Ctx) error {
		if s.history == nil {
			return c.JSON([]history.Entry{})
		}
		entries, err := s.history.Recent(c.Context(), c.QueryInt("limit", 50))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(entries)
	})

	s.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.Get("/ws", websocket.New(s.serveWS))
}

func (s *FiberServer) serveWS(c *websocket.Conn) {
	ch := make(chan snapshot.Snapshot, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if s.hasData {
		ch <- s.latest
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
		c.Close()
	}()

	for snap := range ch {
		if err := c.WriteJSON(snap); err != nil {
			return
		}
	}
}

// Publish stores the cycle's snapshot and pushes it to connected websocket
// clients. Slow clients are skipped rather than blocking the engine.
func (s *FiberServer) Publish(snap snapshot.Snapshot) error {
	s.mu.Lock()
	s.latest = snap
	s.hasData = true
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()
	return nil
}
