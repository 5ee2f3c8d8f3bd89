package entity

import (
	"sync"
	"time"

	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

// EditorSession is an open, unsaved editing state of one template.
// Callers hold the embedded mutex for the duration of one document operation.
type EditorSession struct {
	sync.Mutex

	Id         uuid.UUID
	TemplateId uuid.UUID
	UserId     uuid.UUID
	Subject    string
	Document   *block.Document
	Drag       *block.DragSession
	Dirty      bool
	OpenedAt   time.Time
}

func NewEditorSession(templateId, userId uuid.UUID, doc *block.Document) *EditorSession {
	return &EditorSession{
		Id:         uuid.New(),
		TemplateId: templateId,
		UserId:     userId,
		Document:   doc,
		Drag:       block.NewDragSession(doc),
		OpenedAt:   time.Now(),
	}
}
