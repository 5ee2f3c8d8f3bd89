package dto

import "template-builder-be/pkg/render"

type RenderRequest struct {
	Context     map[string]string `json:"context"`
	UseExamples bool              `json:"use_examples"`
}

type RenderResponse struct {
	Subject  string           `json:"subject"`
	HTML     string           `json:"html"`
	Text     string           `json:"text"`
	Blocks   []render.Output  `json:"blocks"`
	Warnings []render.Warning `json:"warnings"`
}

type SendTemplateRequest struct {
	To              string            `json:"to" validate:"required,email"`
	Context         map[string]string `json:"context"`
	AllowUnresolved bool              `json:"allow_unresolved"`
}

type SendTemplateResponse struct {
	Recipient string           `json:"recipient"`
	Warnings  []render.Warning `json:"warnings"`
}
