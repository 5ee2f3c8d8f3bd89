package dto

import "template-builder-be/pkg/variable"

type VariableCategoryResponse struct {
	Category  string                `json:"category"`
	Variables []variable.Definition `json:"variables"`
}
