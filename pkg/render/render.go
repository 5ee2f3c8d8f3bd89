package render

import (
	"fmt"
	"strings"

	"template-builder-be/pkg/block"

	"github.com/microcosm-cc/bluemonday"
)

// Context maps token names to the values for one recipient
type Context map[string]string

// Registry is the part of the variable catalog the engine needs
type Registry interface {
	IsKnown(token string) bool
}

type WarningCode string

const (
	// WarningUnresolvedVariable: token is registered but the context has no value for it
	WarningUnresolvedVariable WarningCode = "unresolved_variable"
	// WarningUnknownVariable: token is not in the registry
	WarningUnknownVariable WarningCode = "unknown_variable"
	// WarningUnknownSocialNetwork: network id has no icon and was dropped
	WarningUnknownSocialNetwork WarningCode = "unknown_social_network"
)

// Warning is a non-fatal diagnostic collected during a render pass
type Warning struct {
	Code    WarningCode `json:"code"`
	BlockID string      `json:"block_id"`
	Token   string      `json:"token,omitempty"`
	Network string      `json:"network,omitempty"`
	Message string      `json:"message"`
}

// Unresolved reports whether the warning leaves a token marker in the output
func (w Warning) Unresolved() bool {
	return w.Code == WarningUnresolvedVariable || w.Code == WarningUnknownVariable
}

// Output is the rendered form of one block
type Output struct {
	BlockID string        `json:"block_id"`
	Kind    block.Kind    `json:"kind"`
	Payload block.Payload `json:"payload"`
	Content string        `json:"content,omitempty"` // resolved literal for text and variable blocks
	HTML    string        `json:"html"`
	Text    string        `json:"text"`
}

// Result holds one output per input block, in input order, plus the warnings
type Result struct {
	Blocks   []Output  `json:"blocks"`
	Warnings []Warning `json:"warnings"`
}

// Engine resolves tokens and renders blocks. It holds no mutable state.
type Engine struct {
	registry Registry
	policy   *bluemonday.Policy
	plain    *bluemonday.Policy
}

func NewEngine(registry Registry) *Engine {
	return &Engine{
		registry: registry,
		policy:   bluemonday.UGCPolicy(),
		plain:    bluemonday.StrictPolicy(),
	}
}

// Render produces the output of blocks against ctx.
// Missing or unknown tokens never fail the pass; they are reported as warnings.
func (e *Engine) Render(blocks []block.Block, ctx Context) Result {
	res := Result{
		Blocks:   make([]Output, 0, len(blocks)),
		Warnings: make([]Warning, 0),
	}
	for _, b := range blocks {
		out, warnings := e.renderBlock(b, ctx)
		res.Blocks = append(res.Blocks, out)
		res.Warnings = append(res.Warnings, warnings...)
	}
	return res
}

// RenderDocument renders a snapshot of doc
func (e *Engine) RenderDocument(doc *block.Document, ctx Context) Result {
	return e.Render(doc.Blocks(), ctx)
}

func (e *Engine) renderBlock(b block.Block, ctx Context) (Output, []Warning) {
	out := Output{BlockID: b.ID, Kind: b.Kind, Payload: b.Payload}
	var warnings []Warning

	switch p := b.Payload.(type) {
	case block.VariablePayload:
		value, w := e.resolve(b.ID, p.Token, ctx)
		if w != nil {
			warnings = append(warnings, *w)
		}
		out.Content = value
		out.HTML = variableHTML(value)
		out.Text = value

	case block.TextPayload:
		resolved := substitute(p.HTML, func(token string) string {
			value, w := e.resolve(b.ID, token, ctx)
			if w != nil {
				warnings = append(warnings, *w)
				return value
			}
			return escapeHTML(value)
		})
		out.Content = resolved
		out.Payload = block.TextPayload{HTML: resolved}

		// Resolved values are sanitized with the fragment; leftover markers stay literal
		protected, restore := protectMarkers(resolved)
		clean := e.policy.Sanitize(protected)
		out.HTML = textHTML(restore.Replace(clean))
		out.Text = restore.Replace(e.plainText(clean))

	case block.SocialLinksPayload:
		known, unknown := block.FilterNetworks(p.Networks)
		for _, id := range unknown {
			warnings = append(warnings, Warning{
				Code:    WarningUnknownSocialNetwork,
				BlockID: b.ID,
				Network: id,
				Message: fmt.Sprintf("social network %q has no icon and was dropped", id),
			})
		}
		ids := make([]string, 0, len(known))
		for _, n := range known {
			ids = append(ids, n.ID)
		}
		out.Payload = block.SocialLinksPayload{Networks: ids}
		out.HTML = socialHTML(known)
		out.Text = socialText(known)

	case block.ImagePayload:
		out.HTML = imageHTML(p)
		out.Text = imageText(p)

	case block.ButtonPayload:
		out.HTML = buttonHTML(p)
		out.Text = buttonText(p)

	case block.SpacerPayload:
		out.HTML = spacerHTML(p)

	case block.DividerPayload:
		out.HTML = dividerHTML(p)
		out.Text = dividerText
	}

	return out, warnings
}

// resolve looks token up, returning the value or the unchanged marker with a warning
func (e *Engine) resolve(blockID, token string, ctx Context) (string, *Warning) {
	if !e.registry.IsKnown(token) {
		return Marker(token), &Warning{
			Code:    WarningUnknownVariable,
			BlockID: blockID,
			Token:   token,
			Message: fmt.Sprintf("variable %q is not a known token", token),
		}
	}
	value, ok := ctx[token]
	if !ok {
		return Marker(token), &Warning{
			Code:    WarningUnresolvedVariable,
			BlockID: blockID,
			Token:   token,
			Message: fmt.Sprintf("no value supplied for variable %q", token),
		}
	}
	return value, nil
}

// HTML concatenates the block outputs into one email body
func (r Result) HTML() string {
	var sb strings.Builder
	sb.WriteString(documentOpen)
	for _, o := range r.Blocks {
		sb.WriteString(o.HTML)
		sb.WriteString("\n")
	}
	sb.WriteString(documentClose)
	return sb.String()
}

// PlainText joins the non-empty text renderings with blank lines
func (r Result) PlainText() string {
	parts := make([]string, 0, len(r.Blocks))
	for _, o := range r.Blocks {
		if strings.TrimSpace(o.Text) == "" {
			continue
		}
		parts = append(parts, o.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Unresolved returns the warnings that left a token marker in the output
func (r Result) Unresolved() []Warning {
	out := make([]Warning, 0)
	for _, w := range r.Warnings {
		if w.Unresolved() {
			out = append(out, w)
		}
	}
	return out
}

func (r Result) HasUnresolved() bool {
	for _, w := range r.Warnings {
		if w.Unresolved() {
			return true
		}
	}
	return false
}

// ResolveText substitutes inline tokens in a plain string such as a subject line.
// Values are inserted verbatim; warnings carry an empty BlockID.
func (e *Engine) ResolveText(s string, ctx Context) (string, []Warning) {
	var warnings []Warning
	resolved := substitute(s, func(token string) string {
		value, w := e.resolve("", token, ctx)
		if w != nil {
			warnings = append(warnings, *w)
		}
		return value
	})
	return resolved, warnings
}
