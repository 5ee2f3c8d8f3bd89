package block

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Block is one unit of template content
type Block struct {
	ID      string
	Kind    Kind
	Payload Payload
}

// wireBlock is the persisted {id, kind, payload} shape
type wireBlock struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// NewID returns a fresh block id, e.g. "button_8f0c...".
func NewID(kind Kind) string {
	return string(kind) + "_" + uuid.New().String()
}

// New wraps payload in a block with a freshly generated id
func New(payload Payload) Block {
	return Block{
		ID:      NewID(payload.Kind()),
		Kind:    payload.Kind(),
		Payload: payload,
	}
}

// NewOfKind builds a block of kind from its default payload with patch applied on top
func NewOfKind(kind Kind, patch Patch) (Block, error) {
	base, err := DefaultPayload(kind)
	if err != nil {
		return Block{}, err
	}
	payload, err := ApplyPatch(base, patch)
	if err != nil {
		return Block{}, err
	}
	return New(payload), nil
}

// check verifies the block is well formed before it enters a document
func (b Block) check() error {
	if b.ID == "" {
		return &InvalidPayloadError{Kind: b.Kind, Reason: "block id is required"}
	}
	if !b.Kind.Valid() {
		return &InvalidPayloadError{Kind: b.Kind, Reason: "unknown block kind"}
	}
	if b.Payload == nil {
		return &InvalidPayloadError{Kind: b.Kind, Reason: "payload is missing"}
	}
	if b.Payload.Kind() != b.Kind {
		return &InvalidPayloadError{
			Kind:   b.Kind,
			Reason: fmt.Sprintf("payload of kind %s does not match block kind", b.Payload.Kind()),
		}
	}
	return Validate(b.Payload)
}

// normalized returns b with payload defaults applied
func (b Block) normalized() Block {
	if b.Payload != nil {
		b.Payload = withDefaults(b.Payload)
	}
	return b
}

func (b Block) clone() Block {
	if b.Payload != nil {
		b.Payload = b.Payload.clone()
	}
	return b
}

func (b Block) MarshalJSON() ([]byte, error) {
	var payload json.RawMessage
	if b.Payload != nil {
		raw, err := json.Marshal(b.Payload)
		if err != nil {
			return nil, err
		}
		payload = raw
	} else {
		payload = json.RawMessage("null")
	}
	return json.Marshal(wireBlock{ID: b.ID, Kind: b.Kind, Payload: payload})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, err := ParseKind(string(w.Kind))
	if err != nil {
		return err
	}
	payload, err := decodePayload(kind, w.Payload, false)
	if err != nil {
		return err
	}
	b.ID = w.ID
	b.Kind = kind
	b.Payload = payload
	return nil
}

// EnsureIDs assigns ids to blocks that arrive without one.
// Returns the updated slice and whether anything changed.
func EnsureIDs(blocks []Block) ([]Block, bool) {
	changed := false
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		if b.ID == "" {
			b.ID = NewID(b.Kind)
			changed = true
		}
		out[i] = b
	}
	return out, changed
}
