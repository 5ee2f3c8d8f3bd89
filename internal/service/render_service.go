package service

import (
	"context"

	"template-builder-be/internal/dto"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/pkg/mailer"
	"template-builder-be/pkg/block"
	"template-builder-be/pkg/events"
	"template-builder-be/pkg/render"
	"template-builder-be/pkg/variable"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type IRenderService interface {
	Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RenderRequest) (*dto.RenderResponse, error)
	Send(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.SendTemplateRequest) (*dto.SendTemplateResponse, error)
	RenderBlocks(ctx context.Context, subject string, blocks []block.Block, req *dto.RenderRequest) *dto.RenderResponse
}

type renderService struct {
	templates  ITemplateService
	engine     *render.Engine
	registry   *variable.Registry
	mailer     mailer.IEmailService
	events     EventPublisher
	logger     logger.ILogger
	strictSend bool
}

func NewRenderService(
	templates ITemplateService,
	registry *variable.Registry,
	mailer mailer.IEmailService,
	events EventPublisher,
	logger logger.ILogger,
	strictSend bool,
) IRenderService {
	return &renderService{
		templates:  templates,
		engine:     render.NewEngine(registry),
		registry:   registry,
		mailer:     mailer,
		events:     events,
		logger:     logger,
		strictSend: strictSend,
	}
}

// buildContext overlays the caller's values on the registry examples when asked
func (s *renderService) buildContext(values map[string]string, useExamples bool) render.Context {
	ctx := render.Context{}
	if useExamples {
		for token, example := range s.registry.Examples() {
			ctx[token] = example
		}
	}
	for token, value := range values {
		ctx[token] = value
	}
	return ctx
}

func (s *renderService) RenderBlocks(ctx context.Context, subject string, blocks []block.Block, req *dto.RenderRequest) *dto.RenderResponse {
	_, span := otel.Tracer("render-service").Start(ctx, "render.template",
		trace.WithAttributes(attribute.Int("render.blocks", len(blocks))),
	)
	defer span.End()

	renderCtx := s.buildContext(req.Context, req.UseExamples)
	result := s.engine.Render(blocks, renderCtx)
	resolvedSubject, subjectWarnings := s.engine.ResolveText(subject, renderCtx)

	warnings := append(subjectWarnings, result.Warnings...)
	if warnings == nil {
		warnings = make([]render.Warning, 0)
	}
	span.SetAttributes(attribute.Int("render.warnings", len(warnings)))

	return &dto.RenderResponse{
		Subject:  resolvedSubject,
		HTML:     result.HTML(),
		Text:     result.PlainText(),
		Blocks:   result.Blocks,
		Warnings: warnings,
	}
}

func (s *renderService) Preview(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RenderRequest) (*dto.RenderResponse, error) {
	template, err := s.templates.Load(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return s.RenderBlocks(ctx, template.Subject, template.Blocks, req), nil
}

func (s *renderService) Send(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.SendTemplateRequest) (*dto.SendTemplateResponse, error) {
	if s.mailer == nil {
		return nil, ErrMailerUnavailable
	}

	template, err := s.templates.Load(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	res := s.RenderBlocks(ctx, template.Subject, template.Blocks, &dto.RenderRequest{Context: req.Context})

	unresolved := make([]render.Warning, 0)
	for _, w := range res.Warnings {
		if w.Unresolved() {
			unresolved = append(unresolved, w)
		}
	}
	if len(unresolved) > 0 && s.strictSend && !req.AllowUnresolved {
		s.logger.Warn("RENDER", "Send refused, template has unresolved variables", map[string]interface{}{
			"template_id": template.Id,
			"unresolved":  len(unresolved),
		})
		return nil, &UnresolvedVariablesError{Warnings: unresolved}
	}

	if err := s.mailer.SendTemplate(req.To, res.Subject, res.HTML, res.Text); err != nil {
		s.logger.Error("RENDER", "Failed to send template", map[string]interface{}{
			"template_id": template.Id,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("RENDER", "Template sent", map[string]interface{}{
		"template_id": template.Id,
		"warnings":    len(res.Warnings),
	})
	publishEvent(ctx, s.events, s.logger, events.NewTemplateSent(template.Id, userId, req.To, len(res.Warnings)))

	return &dto.SendTemplateResponse{
		Recipient: req.To,
		Warnings:  res.Warnings,
	}, nil
}
