package service

import (
	"context"

	"template-builder-be/internal/dto"
	"template-builder-be/internal/entity"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/repository/memory"
	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

type IEditorService interface {
	Open(ctx context.Context, userId uuid.UUID, req *dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	Close(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error

	InsertBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.InsertBlockRequest) (*dto.SessionResponse, error)
	MoveBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string, req *dto.MoveBlockRequest) (*dto.SessionResponse, error)
	EditBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string, req *dto.EditBlockRequest) (*dto.SessionResponse, error)
	RemoveBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string) (*dto.SessionResponse, error)

	BeginDrag(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.BeginDragRequest) (*dto.SessionResponse, error)
	DragOver(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.DragIndexRequest) (*dto.SessionResponse, error)
	Drop(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.DragIndexRequest) (*dto.SessionResponse, error)

	Save(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SaveSessionResponse, error)
	Render(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenderRequest) (*dto.RenderResponse, error)
}

type editorService struct {
	sessions  *memory.EditorSessionRepository
	templates ITemplateService
	renderer  IRenderService
	logger    logger.ILogger
}

func NewEditorService(
	sessions *memory.EditorSessionRepository,
	templates ITemplateService,
	renderer IRenderService,
	logger logger.ILogger,
) IEditorService {
	sessions.OnEvicted(func(s *entity.EditorSession) {
		logger.Info("EDITOR", "Editor session closed", map[string]interface{}{
			"session_id":  s.Id,
			"template_id": s.TemplateId,
		})
	})

	return &editorService{
		sessions:  sessions,
		templates: templates,
		renderer:  renderer,
		logger:    logger,
	}
}

func (s *editorService) Open(ctx context.Context, userId uuid.UUID, req *dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	template, err := s.templates.Load(ctx, userId, req.TemplateId)
	if err != nil {
		return nil, err
	}

	// Stored lists may predate id assignment
	blocks, _ := block.EnsureIDs(template.Blocks)
	doc, err := block.FromBlocks(blocks)
	if err != nil {
		return nil, err
	}

	session := entity.NewEditorSession(template.Id, userId, doc)
	session.Subject = template.Subject
	res := snapshot(session)
	s.sessions.Save(session)

	s.logger.Info("EDITOR", "Editor session opened", map[string]interface{}{
		"session_id":  session.Id,
		"template_id": template.Id,
		"blocks":      doc.Len(),
	})

	return res, nil
}

func (s *editorService) Show(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	return s.withSession(userId, sessionId, func(session *entity.EditorSession) error {
		return nil
	})
}

func (s *editorService) Close(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	if _, err := s.lookup(userId, sessionId); err != nil {
		return err
	}
	s.sessions.Delete(sessionId)
	return nil
}

func (s *editorService) InsertBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.InsertBlockRequest) (*dto.SessionResponse, error) {
	kind, err := block.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	b, err := block.NewOfKind(kind, req.Payload)
	if err != nil {
		return nil, err
	}

	return s.mutate(userId, sessionId, "insert", b.ID, func(session *entity.EditorSession) error {
		return session.Document.InsertAt(req.Index, b)
	})
}

func (s *editorService) MoveBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string, req *dto.MoveBlockRequest) (*dto.SessionResponse, error) {
	return s.mutate(userId, sessionId, "move", blockId, func(session *entity.EditorSession) error {
		return session.Document.MoveTo(blockId, req.Index)
	})
}

func (s *editorService) EditBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string, req *dto.EditBlockRequest) (*dto.SessionResponse, error) {
	return s.mutate(userId, sessionId, "edit", blockId, func(session *entity.EditorSession) error {
		return session.Document.Edit(blockId, req.Patch)
	})
}

func (s *editorService) RemoveBlock(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, blockId string) (*dto.SessionResponse, error) {
	return s.mutate(userId, sessionId, "remove", blockId, func(session *entity.EditorSession) error {
		return session.Document.Remove(blockId)
	})
}

func (s *editorService) BeginDrag(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.BeginDragRequest) (*dto.SessionResponse, error) {
	return s.withSession(userId, sessionId, func(session *entity.EditorSession) error {
		return session.Drag.BeginDrag(req.BlockId)
	})
}

func (s *editorService) DragOver(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.DragIndexRequest) (*dto.SessionResponse, error) {
	return s.withSession(userId, sessionId, func(session *entity.EditorSession) error {
		session.Drag.DragOver(req.Index)
		return nil
	})
}

func (s *editorService) Drop(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.DragIndexRequest) (*dto.SessionResponse, error) {
	return s.withSession(userId, sessionId, func(session *entity.EditorSession) error {
		id, active := session.Drag.Dragging()
		if err := session.Drag.Drop(req.Index); err != nil {
			return err
		}
		if active {
			session.Dirty = true
			s.logger.Debug("EDITOR", "Block dropped", map[string]interface{}{
				"session_id": session.Id,
				"block_id":   id,
				"index":      req.Index,
			})
		}
		return nil
	})
}

func (s *editorService) Save(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SaveSessionResponse, error) {
	session, err := s.lookup(userId, sessionId)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	blocks := session.Document.Blocks()
	if err := s.templates.SaveBlocks(ctx, userId, session.TemplateId, blocks); err != nil {
		return nil, err
	}
	session.Dirty = false

	s.logger.Info("EDITOR", "Editor session saved", map[string]interface{}{
		"session_id":  session.Id,
		"template_id": session.TemplateId,
		"blocks":      len(blocks),
	})

	return &dto.SaveSessionResponse{
		TemplateId: session.TemplateId,
		BlockCount: len(blocks),
	}, nil
}

func (s *editorService) Render(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenderRequest) (*dto.RenderResponse, error) {
	session, err := s.lookup(userId, sessionId)
	if err != nil {
		return nil, err
	}

	session.Lock()
	blocks := session.Document.Blocks()
	subject := session.Subject
	session.Unlock()

	return s.renderer.RenderBlocks(ctx, subject, blocks, req), nil
}

// lookup hides sessions owned by other users
func (s *editorService) lookup(userId uuid.UUID, sessionId uuid.UUID) (*entity.EditorSession, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok || session.UserId != userId {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// withSession runs fn under the session lock and returns the resulting snapshot
func (s *editorService) withSession(userId uuid.UUID, sessionId uuid.UUID, fn func(session *entity.EditorSession) error) (*dto.SessionResponse, error) {
	session, err := s.lookup(userId, sessionId)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if err := fn(session); err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// mutate is withSession for document edits: it marks the session dirty and logs the operation
func (s *editorService) mutate(userId uuid.UUID, sessionId uuid.UUID, op string, blockId string, fn func(session *entity.EditorSession) error) (*dto.SessionResponse, error) {
	return s.withSession(userId, sessionId, func(session *entity.EditorSession) error {
		if err := fn(session); err != nil {
			return err
		}
		session.Dirty = true
		s.logger.Debug("EDITOR", "Document changed", map[string]interface{}{
			"session_id": session.Id,
			"op":         op,
			"block_id":   blockId,
			"blocks":     session.Document.Len(),
		})
		return nil
	})
}

// snapshot must be called with the session lock held
func snapshot(session *entity.EditorSession) *dto.SessionResponse {
	res := &dto.SessionResponse{
		SessionId:  session.Id,
		TemplateId: session.TemplateId,
		Blocks:     session.Document.Blocks(),
		Dirty:      session.Dirty,
		OpenedAt:   session.OpenedAt,
	}
	if id, active := session.Drag.Dragging(); active {
		res.Dragging = &id
	}
	return res
}
