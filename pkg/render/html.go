package render

import (
	"fmt"
	"html"
	"strings"

	"template-builder-be/pkg/block"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

const (
	documentOpen  = `<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">` + "\n"
	documentClose = `</div>`
	dividerText   = "----------------------------------------"
)

var buttonStyles = map[string]string{
	block.ButtonPrimary:   "background-color: #007BFF; color: #ffffff; border: 2px solid #007BFF;",
	block.ButtonSecondary: "background-color: #6C757D; color: #ffffff; border: 2px solid #6C757D;",
	block.ButtonOutline:   "background-color: transparent; color: #007BFF; border: 2px solid #007BFF;",
}

func escapeHTML(s string) string {
	return html.EscapeString(s)
}

func textHTML(sanitized string) string {
	if strings.TrimSpace(sanitized) == "" {
		return `<p style="margin: 0 0 16px 0;">&nbsp;</p>`
	}
	return `<div style="margin: 0 0 16px 0;">` + sanitized + `</div>`
}

func variableHTML(value string) string {
	return "<span>" + escapeHTML(value) + "</span>"
}

func imageHTML(p block.ImagePayload) string {
	return fmt.Sprintf(`<img src="%s" alt="%s" style="display: block; max-width: 100%%; height: auto; margin: 0 auto 16px auto;" />`,
		escapeHTML(p.URL), escapeHTML(p.AltText))
}

func imageText(p block.ImagePayload) string {
	if p.AltText != "" {
		return fmt.Sprintf("[%s] (%s)", p.AltText, p.URL)
	}
	return fmt.Sprintf("[image] (%s)", p.URL)
}

func buttonHTML(p block.ButtonPayload) string {
	style, ok := buttonStyles[p.Style]
	if !ok {
		style = buttonStyles[block.ButtonPrimary]
	}
	href := p.TargetURL
	if href == "" {
		href = "#"
	}
	return fmt.Sprintf(`<p style="text-align: center; margin: 0 0 16px 0;"><a href="%s" style="%s padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">%s</a></p>`,
		escapeHTML(href), style, escapeHTML(p.Label))
}

func buttonText(p block.ButtonPayload) string {
	if p.TargetURL == "" {
		return p.Label
	}
	return fmt.Sprintf("%s: %s", p.Label, p.TargetURL)
}

func spacerHTML(p block.SpacerPayload) string {
	return fmt.Sprintf(`<div style="height: %dpx; line-height: %dpx; font-size: 0;">&nbsp;</div>`, p.HeightPx, p.HeightPx)
}

func dividerHTML(p block.DividerPayload) string {
	return fmt.Sprintf(`<hr style="border: 0; border-top: 1px %s #d1d5db; margin: 16px 0;" />`, p.Style)
}

func socialHTML(networks []block.Network) string {
	if len(networks) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<p style="text-align: center; margin: 0 0 16px 0;">`)
	for _, n := range networks {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" title="%s" width="24" height="24" style="margin: 0 4px;" />`,
			escapeHTML(n.Icon), escapeHTML(n.Name), escapeHTML(n.Name)))
	}
	sb.WriteString(`</p>`)
	return sb.String()
}

func socialText(networks []block.Network) string {
	names := make([]string, 0, len(networks))
	for _, n := range networks {
		names = append(names, n.Name)
	}
	return strings.Join(names, " | ")
}

// plainText turns a sanitized HTML fragment into readable text for the text/plain part.
// Entities are decoded so recipients see the resolved values, not their escaped form.
func (e *Engine) plainText(sanitized string) string {
	if strings.TrimSpace(sanitized) == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(sanitized)
	if err != nil {
		// Fallback to stripping every tag
		return strings.TrimSpace(html.UnescapeString(e.plain.Sanitize(sanitized)))
	}
	return strings.TrimSpace(html.UnescapeString(md))
}
