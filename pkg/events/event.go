package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a template lifecycle fact published on the bus
type Event interface {
	// EventType is one of the TEMPLATE_* codes
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the concrete event shared by publishers and subscribers.
// Subscribers rebuild it from the wire with OccurredAt taken from the broker.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }

// newTemplateEvent stamps the owner and template ids every template event carries
func newTemplateEvent(eventType string, templateId, userId uuid.UUID, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"template_id": templateId.String(),
		"user_id":     userId.String(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}
