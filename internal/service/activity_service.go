package service

import (
	"context"

	"template-builder-be/internal/pkg/logger"
	"template-builder-be/pkg/events"
	pkgNats "template-builder-be/pkg/nats"
)

// EventSubscriber is satisfied by the NATS subscriber
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pkgNats.EventHandler) error
}

type ITemplateActivityService interface {
	Start() error
}

// templateActivityService writes an audit line for every template event on the bus
type templateActivityService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewTemplateActivityService(subscriber EventSubscriber, logger logger.ILogger) ITemplateActivityService {
	return &templateActivityService{
		subscriber: subscriber,
		logger:     logger,
	}
}

func (s *templateActivityService) Start() error {
	return s.subscriber.Subscribe(pkgNats.Subject(">"), "template-activity", s.handle)
}

func (s *templateActivityService) handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}

	switch event.EventType() {
	case events.TemplateSaved, events.TemplateSent, events.TemplateDeleted:
		s.logger.Info("ACTIVITY", "Template activity", details)
	default:
		s.logger.Debug("ACTIVITY", "Unrecognized template event", details)
	}
	return nil
}
