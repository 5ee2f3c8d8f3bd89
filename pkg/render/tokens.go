package render

import (
	"fmt"
	"regexp"
	"strings"

	"template-builder-be/pkg/block"

	"github.com/google/uuid"
)

// inlineTokenRe matches {{dotted.name}}. Whitespace inside the braces is not a token.
var inlineTokenRe = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\}\}`)

// Marker returns the inline form of token, e.g. {{practice.name}}
func Marker(token string) string {
	return "{{" + token + "}}"
}

type tokenMatch struct {
	start, end int // span of the whole marker
	token      string
}

// scanTokens finds well-formed markers in s.
// A marker touching an extra brace ({{{a}} or {{a}}}) is unbalanced and skipped.
func scanTokens(s string) []tokenMatch {
	idx := inlineTokenRe.FindAllStringSubmatchIndex(s, -1)
	matches := make([]tokenMatch, 0, len(idx))
	for _, m := range idx {
		start, end := m[0], m[1]
		if start > 0 && s[start-1] == '{' {
			continue
		}
		if end < len(s) && s[end] == '}' {
			continue
		}
		matches = append(matches, tokenMatch{start: start, end: end, token: s[m[2]:m[3]]})
	}
	return matches
}

// substitute replaces every well-formed marker with replace(token).
// Text outside markers is copied unchanged.
func substitute(s string, replace func(token string) string) string {
	matches := scanTokens(s)
	if len(matches) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, m := range matches {
		sb.WriteString(s[last:m.start])
		sb.WriteString(replace(m.token))
		last = m.end
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// protectMarkers swaps every marker left in s for an alphanumeric placeholder that
// the sanitizer and the markdown converter pass through untouched.
// The returned replacer puts the literal markers back.
func protectMarkers(s string) (string, *strings.Replacer) {
	matches := scanTokens(s)
	if len(matches) == 0 {
		return s, strings.NewReplacer()
	}
	prefix := "tk" + strings.ReplaceAll(uuid.NewString(), "-", "") + "n"

	var sb strings.Builder
	sb.Grow(len(s))
	pairs := make([]string, 0, 2*len(matches))
	last := 0
	for i, m := range matches {
		placeholder := fmt.Sprintf("%s%dx", prefix, i)
		sb.WriteString(s[last:m.start])
		sb.WriteString(placeholder)
		pairs = append(pairs, placeholder, Marker(m.token))
		last = m.end
	}
	sb.WriteString(s[last:])
	return sb.String(), strings.NewReplacer(pairs...)
}

// InlineTokens lists the tokens referenced in a text fragment, in order of appearance
func InlineTokens(s string) []string {
	matches := scanTokens(s)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.token)
	}
	return out
}

// TokenRef is a token occurrence inside a block
type TokenRef struct {
	BlockID string `json:"block_id"`
	Token   string `json:"token"`
}

// ExtractTokens collects variable-block tokens and inline text tokens in document order
func ExtractTokens(blocks []block.Block) []TokenRef {
	var refs []TokenRef
	for _, b := range blocks {
		switch p := b.Payload.(type) {
		case block.VariablePayload:
			refs = append(refs, TokenRef{BlockID: b.ID, Token: p.Token})
		case block.TextPayload:
			for _, t := range InlineTokens(p.HTML) {
				refs = append(refs, TokenRef{BlockID: b.ID, Token: t})
			}
		}
	}
	return refs
}
