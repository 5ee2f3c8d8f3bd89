package entity

import (
	"time"

	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

type Template struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Subject   string
	Blocks    []block.Block
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
