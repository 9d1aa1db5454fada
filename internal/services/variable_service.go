package services

import (
	"strings"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/placeholder"
)

// VariableEdit is content plus the variable list that goes with it.
type VariableEdit struct {
	Content   string            `json:"content"`
	Variables []models.Variable `json:"variables"`
}

// RenameVariable renames oldName to newName in both the content and the
// variable list. The renamed entry keeps its description, type, flag and
// default.
func RenameVariable(content string, vars []models.Variable, oldName, newName string) (*VariableEdit, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if !placeholder.ValidName(newName) {
		return nil, invalid("new_name", "must be non-empty and contain no braces")
	}
	for _, v := range vars {
		if v.Name == newName && newName != oldName {
			return nil, invalid("new_name", "a variable named "+newName+" already exists")
		}
	}

	renamed := make([]models.Variable, len(vars))
	copy(renamed, vars)
	for i := range renamed {
		if renamed[i].Name == oldName {
			renamed[i].Name = newName
		}
	}

	updated := placeholder.RenameVariable(content, oldName, newName)
	return &VariableEdit{
		Content:   updated,
		Variables: placeholder.Reconcile(updated, renamed).Variables,
	}, nil
}

// RemoveVariable drops a variable and every placeholder that refers to it.
func RemoveVariable(content string, vars []models.Variable, name string) *VariableEdit {
	name = strings.TrimSpace(name)
	kept := make([]models.Variable, 0, len(vars))
	for _, v := range vars {
		if v.Name != name {
			kept = append(kept, v)
		}
	}

	updated := placeholder.RemoveVariableReferences(content, name)
	return &VariableEdit{
		Content:   updated,
		Variables: placeholder.Reconcile(updated, kept).Variables,
	}
}
