package service

import (
	"template-builder-be/internal/dto"
	"template-builder-be/pkg/variable"
)

type IVariableService interface {
	GetAll(category string) []variable.Definition
	GetCategories() []*dto.VariableCategoryResponse
}

type variableService struct {
	registry *variable.Registry
}

func NewVariableService(registry *variable.Registry) IVariableService {
	return &variableService{registry: registry}
}

func (s *variableService) GetAll(category string) []variable.Definition {
	if category == "" {
		return s.registry.ListAll()
	}
	return s.registry.ListByCategory(category)
}

func (s *variableService) GetCategories() []*dto.VariableCategoryResponse {
	categories := s.registry.Categories()
	result := make([]*dto.VariableCategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, &dto.VariableCategoryResponse{
			Category:  c,
			Variables: s.registry.ListByCategory(c),
		})
	}
	return result
}
