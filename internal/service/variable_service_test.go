package service

import (
	"testing"

	"template-builder-be/pkg/variable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableServiceGetAll(t *testing.T) {
	svc := NewVariableService(variable.Default)

	assert.Equal(t, variable.Default.ListAll(), svc.GetAll(""))
	for _, d := range svc.GetAll(variable.CategoryPractice) {
		assert.Equal(t, variable.CategoryPractice, d.Category)
	}
	assert.Empty(t, svc.GetAll("Billing"))
}

func TestVariableServiceGetCategories(t *testing.T) {
	svc := NewVariableService(variable.Default)

	groups := svc.GetCategories()
	require.Len(t, groups, 4)
	assert.Equal(t, variable.CategoryPatient, groups[0].Category)
	assert.Equal(t, "patient.firstName", groups[0].Variables[0].Token)

	total := 0
	for _, g := range groups {
		total += len(g.Variables)
	}
	assert.Len(t, variable.Default.ListAll(), total)
}
