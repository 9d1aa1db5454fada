package models

// VariableType is advisory: it picks the input widget and default coercion,
// it is never checked against runtime values.
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeNumber  VariableType = "number"
	VariableTypeBoolean VariableType = "boolean"
)

// Variable describes one placeholder of a template.
type Variable struct {
	Name         string       `json:"name" validate:"required,excludesall={}"`
	Description  string       `json:"description"`
	Type         VariableType `json:"type" validate:"required,oneof=string number boolean"`
	Required     bool         `json:"required"`
	DefaultValue string       `json:"default_value"`
}

// Valid reports whether t is one of the known variable types.
func (t VariableType) Valid() bool {
	switch t {
	case VariableTypeString, VariableTypeNumber, VariableTypeBoolean:
		return true
	}
	return false
}
