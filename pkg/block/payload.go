package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Payload is the kind-specific content of a block.
// Only the payload types declared in this package implement it.
type Payload interface {
	Kind() Kind
	clone() Payload
}

type ButtonStyle = string
type DividerStyle = string

const (
	ButtonPrimary   ButtonStyle = "primary"
	ButtonSecondary ButtonStyle = "secondary"
	ButtonOutline   ButtonStyle = "outline"

	DividerSolid  DividerStyle = "solid"
	DividerDashed DividerStyle = "dashed"
	DividerDotted DividerStyle = "dotted"
)

// TextPayload holds a rich-text HTML fragment. Empty renders as a blank paragraph.
type TextPayload struct {
	HTML string `json:"html"`
}

type ImagePayload struct {
	URL     string `json:"url" validate:"required"`
	AltText string `json:"altText"`
}

type ButtonPayload struct {
	Label     string      `json:"label" validate:"required"`
	Style     ButtonStyle `json:"style" validate:"oneof=primary secondary outline"`
	TargetURL string      `json:"targetUrl"`
}

type SpacerPayload struct {
	HeightPx int `json:"heightPx" validate:"gt=0"`
}

type DividerPayload struct {
	Style DividerStyle `json:"style" validate:"oneof=solid dashed dotted"`
}

// SocialLinksPayload lists network identifiers in display order.
// Unknown identifiers are kept in storage and dropped at render time.
type SocialLinksPayload struct {
	Networks []string `json:"networks"`
}

// VariablePayload references a registry token such as patient.firstName.
type VariablePayload struct {
	Token string `json:"token" validate:"required"`
}

func (TextPayload) Kind() Kind        { return KindText }
func (ImagePayload) Kind() Kind       { return KindImage }
func (ButtonPayload) Kind() Kind      { return KindButton }
func (SpacerPayload) Kind() Kind      { return KindSpacer }
func (DividerPayload) Kind() Kind     { return KindDivider }
func (SocialLinksPayload) Kind() Kind { return KindSocialLinks }
func (VariablePayload) Kind() Kind    { return KindVariable }

func (p TextPayload) clone() Payload     { return p }
func (p ImagePayload) clone() Payload    { return p }
func (p ButtonPayload) clone() Payload   { return p }
func (p SpacerPayload) clone() Payload   { return p }
func (p DividerPayload) clone() Payload  { return p }
func (p VariablePayload) clone() Payload { return p }

func (p SocialLinksPayload) clone() Payload {
	if p.Networks == nil {
		return p
	}
	networks := make([]string, len(p.Networks))
	copy(networks, p.Networks)
	return SocialLinksPayload{Networks: networks}
}

// Patch is a partial payload in its JSON shape, e.g. {"heightPx": 24}.
type Patch map[string]any

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names the way clients send them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a payload against its kind's validity rule
func Validate(p Payload) error {
	if p == nil {
		return &InvalidPayloadError{Reason: "payload is missing"}
	}
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &InvalidPayloadError{Kind: p.Kind(), Reason: err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describeRule(fe)
	}
	return &InvalidPayloadError{Kind: p.Kind(), Fields: fields}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

// DefaultPayload returns the payload a freshly dropped block of kind starts with
func DefaultPayload(kind Kind) (Payload, error) {
	switch kind {
	case KindText:
		return TextPayload{HTML: "<p></p>"}, nil
	case KindImage:
		return ImagePayload{}, nil
	case KindButton:
		return ButtonPayload{Label: "Click here", Style: ButtonPrimary}, nil
	case KindSpacer:
		return SpacerPayload{HeightPx: 24}, nil
	case KindDivider:
		return DividerPayload{Style: DividerSolid}, nil
	case KindSocialLinks:
		return SocialLinksPayload{Networks: []string{}}, nil
	case KindVariable:
		return VariablePayload{}, nil
	}
	return nil, fmt.Errorf("%w: unknown block kind %q", ErrInvalidPayload, kind)
}

// ApplyPatch merges patch over p and returns a new, validated payload.
// p itself is never modified.
func ApplyPatch(p Payload, patch Patch) (Payload, error) {
	if p == nil {
		return nil, &InvalidPayloadError{Reason: "payload is missing"}
	}
	base, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", p.Kind(), err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", p.Kind(), err)
	}
	for k, v := range patch {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, &InvalidPayloadError{Kind: p.Kind(), Reason: err.Error()}
	}

	next, err := decodePayload(p.Kind(), merged, true)
	if err != nil {
		return nil, err
	}
	if err := Validate(next); err != nil {
		return nil, err
	}
	return next, nil
}

// decodePayload builds the payload of kind from its JSON form.
// strict rejects fields the kind does not define.
func decodePayload(kind Kind, data []byte, strict bool) (Payload, error) {
	switch kind {
	case KindText:
		return decodeInto[TextPayload](kind, data, strict)
	case KindImage:
		return decodeInto[ImagePayload](kind, data, strict)
	case KindButton:
		return decodeInto[ButtonPayload](kind, data, strict)
	case KindSpacer:
		return decodeInto[SpacerPayload](kind, data, strict)
	case KindDivider:
		return decodeInto[DividerPayload](kind, data, strict)
	case KindSocialLinks:
		return decodeInto[SocialLinksPayload](kind, data, strict)
	case KindVariable:
		return decodeInto[VariablePayload](kind, data, strict)
	}
	return nil, fmt.Errorf("%w: unknown block kind %q", ErrInvalidPayload, kind)
}

// withDefaults fills optional fields that have a documented default
func withDefaults(p Payload) Payload {
	switch v := p.(type) {
	case ButtonPayload:
		if v.Style == "" {
			v.Style = ButtonPrimary
		}
		return v
	}
	return p
}

func decodeInto[T Payload](kind Kind, data []byte, strict bool) (Payload, error) {
	var p T
	if len(data) == 0 || string(data) == "null" {
		return withDefaults(p), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&p); err != nil {
		return nil, &InvalidPayloadError{Kind: kind, Reason: err.Error()}
	}
	return withDefaults(p), nil
}
