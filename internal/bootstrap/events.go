package bootstrap

import (
	"log/slog"

	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/sse"
)

// InitializeEventSystem creates the in-process bus the coordinator publishes
// lifecycle events on.
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized, "types", len(event.RegearTypes))
	return bus
}

// InitializeFeed starts the live regear feed and bridges bus events into it.
func InitializeFeed(bus event.Bus) *sse.Hub {
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()
	return hub
}
