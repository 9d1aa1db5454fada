package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateVariables checks each variable definition and rejects duplicate
// names. It returns the first problem found.
func ValidateVariables(vars []Variable) error {
	seen := make(map[string]struct{}, len(vars))
	for i := range vars {
		if err := validate.Struct(vars[i]); err != nil {
			return fmt.Errorf("variable %d (%q): %w", i, vars[i].Name, err)
		}
		if _, dup := seen[vars[i].Name]; dup {
			return fmt.Errorf("duplicate variable name %q", vars[i].Name)
		}
		seen[vars[i].Name] = struct{}{}
	}
	return nil
}
