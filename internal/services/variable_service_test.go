package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

func TestRenameVariableKeepsMetadata(t *testing.T) {
	vars := []models.Variable{
		{Name: "topic", Description: "Subject", Type: models.VariableTypeString, Required: true},
		{Name: "count", Type: models.VariableTypeNumber, DefaultValue: "3"},
	}

	edit, err := RenameVariable("Write {{count}} lines on {{ topic }} and {{topic}}", vars, "topic", "subject")
	require.NoError(t, err)

	assert.Equal(t, "Write {{count}} lines on {{subject}} and {{subject}}", edit.Content)
	require.Len(t, edit.Variables, 2)
	assert.Equal(t, models.Variable{Name: "subject", Description: "Subject", Type: models.VariableTypeString, Required: true}, edit.Variables[0])
	assert.Equal(t, "count", edit.Variables[1].Name)
}

func TestRenameVariableRejects(t *testing.T) {
	vars := []models.Variable{{Name: "a", Type: models.VariableTypeString}, {Name: "b", Type: models.VariableTypeString}}

	_, err := RenameVariable("{{a}} {{b}}", vars, "a", "b")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = RenameVariable("{{a}}", vars, "a", "{x}")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = RenameVariable("{{a}}", vars, "a", " ")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRemoveVariable(t *testing.T) {
	vars := []models.Variable{
		{Name: "name", Type: models.VariableTypeString, Required: true},
		{Name: "age", Type: models.VariableTypeNumber},
	}

	edit := RemoveVariable("Hello {{name}}, you are {{age}}", vars, "age")

	assert.Equal(t, "Hello {{name}}, you are", edit.Content)
	require.Len(t, edit.Variables, 1)
	assert.Equal(t, "name", edit.Variables[0].Name)
	assert.True(t, edit.Variables[0].Required)
}
