package block

import "fmt"

// Document is an ordered, dense sequence of blocks with unique ids.
// It is single-writer: callers serialize mutations.
type Document struct {
	blocks []Block
}

func NewDocument() *Document {
	return &Document{blocks: make([]Block, 0)}
}

// FromBlocks rebuilds a document from a persisted sequence, keeping its order
func FromBlocks(blocks []Block) (*Document, error) {
	doc := &Document{blocks: make([]Block, 0, len(blocks))}
	seen := make(map[string]bool, len(blocks))
	for i, b := range blocks {
		b = b.normalized()
		if err := b.check(); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("block %d: %w: %s", i, ErrDuplicateID, b.ID)
		}
		seen[b.ID] = true
		doc.blocks = append(doc.blocks, b.clone())
	}
	return doc, nil
}

func (d *Document) Len() int {
	return len(d.blocks)
}

// IndexOf returns the position of id, or -1
func (d *Document) IndexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) Has(id string) bool {
	return d.IndexOf(id) >= 0
}

// Get returns a copy of the block with id
func (d *Document) Get(id string) (Block, error) {
	i := d.IndexOf(id)
	if i < 0 {
		return Block{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return d.blocks[i].clone(), nil
}

// Blocks returns a snapshot of the sequence in render order.
// Mutating the snapshot never affects the document.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.clone()
	}
	return out
}

func (d *Document) Clone() *Document {
	return &Document{blocks: d.Blocks()}
}

// InsertAt places b at index, shifting later blocks right.
// index is clamped into [0, Len()].
func (d *Document) InsertAt(index int, b Block) error {
	b = b.normalized()
	if err := b.check(); err != nil {
		return err
	}
	if d.Has(b.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}
	d.insert(clamp(index, len(d.blocks)), b.clone())
	return nil
}

// MoveTo relocates the block with id to newIndex.
// newIndex is interpreted against the sequence with the block already removed.
func (d *Document) MoveTo(id string, newIndex int) error {
	from := d.IndexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b := d.removeAt(from)
	d.insert(clamp(newIndex, len(d.blocks)), b)
	return nil
}

// Edit merges patch into the payload of the block with id.
// On failure the document is left untouched.
func (d *Document) Edit(id string, patch Patch) error {
	i := d.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	current := d.blocks[i]
	next, err := ApplyPatch(current.Payload, patch)
	if err != nil {
		return err
	}
	d.blocks[i] = Block{ID: current.ID, Kind: current.Kind, Payload: next}
	return nil
}

// Remove deletes the block with id; later blocks close the gap
func (d *Document) Remove(id string) error {
	i := d.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d.removeAt(i)
	return nil
}

func (d *Document) insert(index int, b Block) {
	d.blocks = append(d.blocks, Block{})
	copy(d.blocks[index+1:], d.blocks[index:])
	d.blocks[index] = b
}

func (d *Document) removeAt(index int) Block {
	b := d.blocks[index]
	copy(d.blocks[index:], d.blocks[index+1:])
	d.blocks[len(d.blocks)-1] = Block{}
	d.blocks = d.blocks[:len(d.blocks)-1]
	return b
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
