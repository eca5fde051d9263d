package service

import (
	"context"

	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/websocket"
	"ai-datavault-be/pkg/events"
	"ai-datavault-be/pkg/nats"
)

// IEventPublisher fans import lifecycle events out to the websocket hub and
// the NATS bus. Both sinks are optional; a failed or absent sink never fails
// the import itself.
type IEventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

type eventPublisher struct {
	nats   *nats.Publisher
	hub    *websocket.Hub
	logger logger.ILogger
}

func NewEventPublisher(natsPublisher *nats.Publisher, hub *websocket.Hub, log logger.ILogger) IEventPublisher {
	return &eventPublisher{
		nats:   natsPublisher,
		hub:    hub,
		logger: log,
	}
}

func (p *eventPublisher) Emit(ctx context.Context, event events.Event) {
	if p.hub != nil {
		p.hub.Broadcast(event)
	}
	if p.nats != nil {
		if err := p.nats.Publish(ctx, event); err != nil {
			p.logger.Warn("EventPublisher", "Failed to publish event to NATS", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}
}
