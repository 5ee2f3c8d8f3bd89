package block

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateID is returned when a block id already exists in the document.
	ErrDuplicateID = errors.New("duplicate block id")
	// ErrNotFound is returned when an operation references an id absent from the document.
	ErrNotFound = errors.New("block not found")
	// ErrInvalidPayload is returned when a payload violates its kind's rules.
	ErrInvalidPayload = errors.New("invalid block payload")
)

// InvalidPayloadError carries the per-field reasons behind ErrInvalidPayload.
type InvalidPayloadError struct {
	Kind   Kind
	Fields map[string]string
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid %s payload", e.Kind))
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+" "+e.Fields[k])
		}
		sb.WriteString(": ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String()
}

func (e *InvalidPayloadError) Unwrap() error { return ErrInvalidPayload }
