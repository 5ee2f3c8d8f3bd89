package service

import (
	"context"
	"encoding/json"
	"time"

	"template-builder-be/internal/dto"
	"template-builder-be/internal/entity"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/repository/specification"
	"template-builder-be/internal/repository/unitofwork"
	"template-builder-be/pkg/block"
	"template-builder-be/pkg/events"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ITemplateService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTemplateResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.UpdateTemplateResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	// Load returns the owned template or ErrTemplateNotFound
	Load(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Template, error)
	// SaveBlocks replaces the block list of an owned template
	SaveBlocks(ctx context.Context, userId uuid.UUID, id uuid.UUID, blocks []block.Block) error
}

type templateService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	events           EventPublisher
	logger           logger.ILogger
}

func NewTemplateService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	events EventPublisher,
	logger logger.ILogger,
) ITemplateService {
	return &templateService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		events:           events,
		logger:           logger,
	}
}

// normalizeBlocks fills missing ids and validates the list as a document
func normalizeBlocks(blocks []block.Block) ([]block.Block, error) {
	blocks, _ = block.EnsureIDs(blocks)
	doc, err := block.FromBlocks(blocks)
	if err != nil {
		return nil, err
	}
	return doc.Blocks(), nil
}

func (s *templateService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTemplateRequest) (*dto.CreateTemplateResponse, error) {
	blocks, err := normalizeBlocks(req.Blocks)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	template := entity.Template{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Subject:   req.Subject,
		Blocks:    blocks,
		CreatedAt: time.Now(),
	}

	if err := uow.TemplateRepository().Create(ctx, &template); err != nil {
		return nil, err
	}

	s.logger.Debug("TEMPLATE", "Template created", map[string]interface{}{
		"template_id": template.Id,
		"blocks":      len(blocks),
	})
	s.afterSave(ctx, &template)

	return &dto.CreateTemplateResponse{
		Id: template.Id,
	}, nil
}

func (s *templateService) GetAll(ctx context.Context, userId uuid.UUID, req *dto.ListTemplatesRequest) (*dto.ListTemplatesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.NameContains{Query: req.Query},
	}

	total, err := uow.TemplateRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	templates, err := uow.TemplateRepository().FindAll(ctx,
		append(filters, specification.Pagination{Limit: limit, Offset: offset})...,
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.GetAllTemplateResponse, 0, len(templates))
	for _, t := range templates {
		items = append(items, &dto.GetAllTemplateResponse{
			Id:         t.Id,
			Name:       t.Name,
			Subject:    t.Subject,
			BlockCount: len(t.Blocks),
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
		})
	}

	return &dto.ListTemplatesResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *templateService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTemplateResponse, error) {
	template, err := s.Load(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	return &dto.ShowTemplateResponse{
		Id:        template.Id,
		Name:      template.Name,
		Subject:   template.Subject,
		Blocks:    template.Blocks,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}, nil
}

func (s *templateService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.UpdateTemplateResponse, error) {
	blocks, err := normalizeBlocks(req.Blocks)
	if err != nil {
		return nil, err
	}

	template, err := s.Load(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	template.Name = req.Name
	template.Subject = req.Subject
	template.Blocks = blocks
	template.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TemplateRepository().Update(ctx, template); err != nil {
		return nil, err
	}

	s.afterSave(ctx, template)

	return &dto.UpdateTemplateResponse{
		Id: template.Id,
	}, nil
}

func (s *templateService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	template, err := s.Load(ctx, userId, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TemplateRepository().Delete(ctx, template.Id); err != nil {
		return err
	}

	publishEvent(ctx, s.events, s.logger, events.NewTemplateDeleted(template.Id, userId))
	return nil
}

func (s *templateService) Load(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Template, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func (s *templateService) SaveBlocks(ctx context.Context, userId uuid.UUID, id uuid.UUID, blocks []block.Block) error {
	blocks, err := normalizeBlocks(blocks)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	template, err := uow.TemplateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}

	now := time.Now()
	template.Blocks = blocks
	template.UpdatedAt = &now
	if err := uow.TemplateRepository().Update(ctx, template); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.afterSave(ctx, template)
	return nil
}

// afterSave queues the token lint and announces the save
func (s *templateService) afterSave(ctx context.Context, template *entity.Template) {
	msg, _ := json.Marshal(dto.PublishTemplateLintMessage{TemplateId: template.Id})
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.logger.Error("TEMPLATE", "Failed to queue token lint", map[string]interface{}{
			"template_id": template.Id,
			"error":       err.Error(),
		})
	}

	publishEvent(ctx, s.events, s.logger, events.NewTemplateSaved(template.Id, template.UserId, len(template.Blocks)))
}
