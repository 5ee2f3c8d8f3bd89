package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTemplateEventsCarryIds(t *testing.T) {
	templateId, userId := uuid.New(), uuid.New()

	tests := []struct {
		event    BaseEvent
		wantType string
		wantKeys []string
	}{
		{NewTemplateSaved(templateId, userId, 3), TemplateSaved, []string{"template_id", "user_id", "block_count"}},
		{NewTemplateSent(templateId, userId, "a@b.c", 1), TemplateSent, []string{"template_id", "user_id", "recipient", "warning_count"}},
		{NewTemplateDeleted(templateId, userId), TemplateDeleted, []string{"template_id", "user_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.EventType())
			assert.Len(t, tt.event.Payload(), len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, tt.event.Payload(), k)
			}
			assert.Equal(t, templateId.String(), tt.event.Payload()["template_id"])
			assert.WithinDuration(t, time.Now(), tt.event.Timestamp(), time.Minute)
		})
	}
}
