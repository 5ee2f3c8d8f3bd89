package dto

import (
	"time"

	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Name    string        `json:"name" validate:"required,max=255"`
	Subject string        `json:"subject" validate:"max=255"`
	Blocks  []block.Block `json:"blocks"`
}

type CreateTemplateResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListTemplatesRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Query  string `query:"q"`
}

type GetAllTemplateResponse struct {
	Id         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Subject    string     `json:"subject"`
	BlockCount int        `json:"block_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ListTemplatesResponse struct {
	Items  []*GetAllTemplateResponse `json:"items"`
	Total  int64                     `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

type ShowTemplateResponse struct {
	Id        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Subject   string        `json:"subject"`
	Blocks    []block.Block `json:"blocks"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
}

type UpdateTemplateRequest struct {
	Id      uuid.UUID     `json:"-"`
	Name    string        `json:"name" validate:"required,max=255"`
	Subject string        `json:"subject" validate:"max=255"`
	Blocks  []block.Block `json:"blocks"`
}

type UpdateTemplateResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishTemplateLintMessage is the in-process message consumed by the token linter
type PublishTemplateLintMessage struct {
	TemplateId uuid.UUID `json:"template_id"`
}
