package block

import "fmt"

// DragSession drives drag-and-drop reordering of one document.
// BeginDrag captures a block, DragOver is visual only, Drop performs the move.
type DragSession struct {
	doc    *Document
	id     string
	active bool
}

func NewDragSession(doc *Document) *DragSession {
	return &DragSession{doc: doc}
}

// BeginDrag captures the block with id. The document is not touched.
// Starting a drag while another is active replaces it.
func (s *DragSession) BeginDrag(id string) error {
	if !s.doc.Has(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.id = id
	s.active = true
	return nil
}

// DragOver is advisory; the hovered index only matters to the UI.
func (s *DragSession) DragOver(index int) {}

// Drop moves the captured block to index and ends the drag.
// Without an active drag it does nothing.
func (s *DragSession) Drop(index int) error {
	if !s.active {
		return nil
	}
	id := s.id
	s.Cancel()
	return s.doc.MoveTo(id, index)
}

func (s *DragSession) Cancel() {
	s.id = ""
	s.active = false
}

// Dragging reports the captured block id, if any
func (s *DragSession) Dragging() (string, bool) {
	return s.id, s.active
}
