package dto

import (
	"time"

	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

type OpenSessionRequest struct {
	TemplateId uuid.UUID `json:"template_id" validate:"required"`
}

type SessionResponse struct {
	SessionId  uuid.UUID     `json:"session_id"`
	TemplateId uuid.UUID     `json:"template_id"`
	Blocks     []block.Block `json:"blocks"`
	Dirty      bool          `json:"dirty"`
	Dragging   *string       `json:"dragging"`
	OpenedAt   time.Time     `json:"opened_at"`
}

type InsertBlockRequest struct {
	Index   int         `json:"index"`
	Kind    string      `json:"kind" validate:"required"`
	Payload block.Patch `json:"payload"`
}

type MoveBlockRequest struct {
	Index int `json:"index"`
}

type EditBlockRequest struct {
	Patch block.Patch `json:"patch" validate:"required"`
}

type BeginDragRequest struct {
	BlockId string `json:"block_id" validate:"required"`
}

type DragIndexRequest struct {
	Index int `json:"index"`
}

type SaveSessionResponse struct {
	TemplateId uuid.UUID `json:"template_id"`
	BlockCount int       `json:"block_count"`
}
