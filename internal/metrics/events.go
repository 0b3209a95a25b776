package metrics

import (
	"context"

	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := append([]event.Type{event.RegearRejected, event.SurfaceFailed}, event.RegearTypes...)
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RegearReserved, event.RegearPickedUp, event.RegearCompleted, event.RegearCancelled:
		payload, err := event.DecodePayload[event.RegearPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		RegearTransitions.WithLabelValues(payload.Status).Inc()
		if evt.Type == event.RegearCompleted {
			for _, slot := range payload.Slots {
				RegearItemsIssued.WithLabelValues(slot, payload.Tier).Inc()
			}
		}

	case event.RegearRejected:
		payload, err := event.DecodePayload[event.RegearRejectedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		RegearRejections.WithLabelValues(payload.Event, payload.Reason).Inc()

	case event.SurfaceFailed:
		payload, err := event.DecodePayload[event.SurfaceFailedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		SurfaceFailures.WithLabelValues(payload.Surface, payload.Operation).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
