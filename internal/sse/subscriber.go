package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/PhoenixBot_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the lifecycle handlers. Rejections and surface
// failures carry no guild and are not streamed.
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.RegearTypes))
	for _, t := range event.RegearTypes {
		s.bus.Subscribe(t, s.handleRegear)
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) handleRegear(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RegearPayloadV1](evt.Payload)
	if err != nil || payload.GuildID == "" {
		slog.Debug(LogMsgUnreadablePayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(payload.GuildID, string(evt.Type), RegearPayload{
		RegearID:    payload.RegearID,
		IssuerID:    payload.IssuerID,
		RecipientID: payload.RecipientID,
		Status:      payload.Status,
		Tier:        payload.Tier,
		Slots:       payload.Slots,
	})

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"guild_id", payload.GuildID,
		"regear_id", payload.RegearID)

	return nil
}
