package nats

import (
	"testing"

	"template-builder-be/pkg/events"
)

func TestSubjectRoundTrip(t *testing.T) {
	tests := []string{events.TemplateSaved, events.TemplateSent, events.TemplateDeleted}
	for _, eventType := range tests {
		subject := Subject(eventType)
		if subject != "templates."+eventType {
			t.Errorf("Subject(%q) = %q", eventType, subject)
		}
		if got := EventType(subject); got != eventType {
			t.Errorf("EventType(%q) = %q, want %q", subject, got, eventType)
		}
	}
}
