package service

import (
	"context"
	"encoding/json"

	"template-builder-be/internal/dto"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/repository/specification"
	"template-builder-be/internal/repository/unitofwork"
	"template-builder-be/pkg/block"
	"template-builder-be/pkg/render"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ILintConsumerService interface {
	Consume(ctx context.Context) error
}

// TokenRegistry is the part of the variable catalog the linter needs
type TokenRegistry interface {
	IsKnown(token string) bool
}

type lintConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	registry   TokenRegistry
	logger     logger.ILogger
}

func NewLintConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	registry TokenRegistry,
	logger logger.ILogger,
) ILintConsumerService {
	return &lintConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		registry:   registry,
		logger:     logger,
	}
}

// UnknownTokens returns the token references the registry does not know, in document order
func UnknownTokens(registry TokenRegistry, blocks []block.Block) []render.TokenRef {
	unknown := make([]render.TokenRef, 0)
	for _, ref := range render.ExtractTokens(blocks) {
		if !registry.IsKnown(ref.Token) {
			unknown = append(unknown, ref)
		}
	}
	return unknown
}

func (cs *lintConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *lintConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishTemplateLintMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("LINT", "Failed to unmarshal lint message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // never retry a malformed message
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Global lookup, no owner restriction
	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: payload.TemplateId})
	if err != nil {
		cs.logger.Error("LINT", "Failed to load template", map[string]interface{}{
			"template_id": payload.TemplateId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if template == nil {
		// Deleted before the lint ran
		msg.Ack()
		return
	}

	for _, ref := range UnknownTokens(cs.registry, template.Blocks) {
		cs.logger.Warn("LINT", "Template references an unknown variable", map[string]interface{}{
			"template_id": template.Id,
			"block_id":    ref.BlockID,
			"token":       ref.Token,
		})
	}

	msg.Ack()
}
