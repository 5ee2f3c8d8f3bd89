package events

import "github.com/google/uuid"

const (
	TemplateSaved   = "TEMPLATE_SAVED"
	TemplateSent    = "TEMPLATE_SENT"
	TemplateDeleted = "TEMPLATE_DELETED"
)

func NewTemplateSaved(templateId, userId uuid.UUID, blockCount int) BaseEvent {
	return newTemplateEvent(TemplateSaved, templateId, userId, map[string]interface{}{
		"block_count": blockCount,
	})
}

func NewTemplateSent(templateId, userId uuid.UUID, recipient string, warningCount int) BaseEvent {
	return newTemplateEvent(TemplateSent, templateId, userId, map[string]interface{}{
		"recipient":     recipient,
		"warning_count": warningCount,
	})
}

func NewTemplateDeleted(templateId, userId uuid.UUID) BaseEvent {
	return newTemplateEvent(TemplateDeleted, templateId, userId, nil)
}
