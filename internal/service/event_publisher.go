package service

import (
	"context"
	"time"

	"template-builder-be/internal/pkg/logger"
	"template-builder-be/pkg/events"
)

// EventPublisher is satisfied by the NATS publisher
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

const eventPublishTimeout = 2 * time.Second

// publishEvent is best effort: a broker outage never fails the request
func publishEvent(ctx context.Context, pub EventPublisher, log logger.ILogger, event events.Event) {
	if pub == nil {
		return
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	if err := pub.Publish(publishCtx, event); err != nil {
		log.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
