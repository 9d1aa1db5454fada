package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

func TestReconcile_AddsNewPlaceholders(t *testing.T) {
	res := Reconcile("Hi {{name}}, you are {{age}}", nil)

	assert.Equal(t, []string{"name", "age"}, res.Added)
	assert.Empty(t, res.Removed)
	assert.True(t, res.Changed())
	if assert.Len(t, res.Variables, 2) {
		for i, name := range []string{"name", "age"} {
			v := res.Variables[i]
			assert.Equal(t, name, v.Name)
			assert.Equal(t, models.VariableTypeString, v.Type)
			assert.False(t, v.Required)
			assert.Equal(t, "", v.DefaultValue)
			assert.Equal(t, "Auto-detected variable: "+name, v.Description)
		}
	}
}

func TestReconcile_RemovesStaleVariables(t *testing.T) {
	existing := []models.Variable{
		{Name: "name", Type: models.VariableTypeString, Required: true, Description: "Who"},
		{Name: "age", Type: models.VariableTypeNumber},
	}

	res := Reconcile("Hi {{name}}", existing)

	assert.Equal(t, []string{"age"}, res.Removed)
	assert.Empty(t, res.Added)
	assert.Equal(t, []models.Variable{existing[0]}, res.Variables)
}

func TestReconcile_LeavesRetainedVariablesUntouched(t *testing.T) {
	existing := []models.Variable{
		{Name: "tone", Type: models.VariableTypeString, Description: "Writing tone", DefaultValue: "Professional"},
		{Name: "gone", Type: models.VariableTypeString},
		{Name: "topic", Type: models.VariableTypeString, Required: true, Description: "Blog topic"},
	}

	res := Reconcile("{{fresh}} about {{topic}} in a {{tone}} voice", existing)

	assert.Equal(t, []string{"fresh"}, res.Added)
	assert.Equal(t, []string{"gone"}, res.Removed)
	assert.Equal(t, []models.Variable{
		existing[0],
		existing[2],
		{Name: "fresh", Description: AutoDescription("fresh"), Type: models.VariableTypeString},
	}, res.Variables)
}

func TestReconcile_Idempotent(t *testing.T) {
	cases := []struct {
		content  string
		existing []models.Variable
	}{
		{"Hi {{name}}, you are {{age}}", nil},
		{"Hi {{name}}", []models.Variable{{Name: "name"}, {Name: "age"}}},
		{"", []models.Variable{{Name: "x"}}},
		{"{{ a }} {{b}} {{a}}", []models.Variable{{Name: "b", Required: true}}},
	}
	for _, tc := range cases {
		first := Reconcile(tc.content, tc.existing)
		second := Reconcile(tc.content, first.Variables)
		assert.Empty(t, second.Added, tc.content)
		assert.Empty(t, second.Removed, tc.content)
		assert.False(t, second.Changed())
		assert.Equal(t, first.Variables, second.Variables)
	}
}

func TestRenameVariable(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		old, new string
		want     string
	}{
		{"Simple", "Review {{code}} now", "code", "snippet", "Review {{snippet}} now"},
		{"All occurrences", "{{code}} and {{code}}", "code", "src", "{{src}} and {{src}}"},
		{"Trim-normalized match", "{{ code }}", "code", "src", "{{src}}"},
		{"Literal text untouched", "code: {{code}}", "code", "src", "code: {{src}}"},
		{"Other placeholders untouched", "{{codec}} {{code}}", "code", "src", "{{codec}} {{src}}"},
		{"Metacharacters are literal", "{{a.b}} {{axb}}", "a.b", "c", "{{c}} {{axb}}"},
		{"Dollar in new name", "{{price}}", "price", "$amount", "{{$amount}}"},
		{"Same name", "{{x}}", "x", "x", "{{x}}"},
		{"Invalid new name ignored", "{{x}}", "x", "a}b", "{{x}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenameVariable(tt.content, tt.old, tt.new))
		})
	}
}

func TestRemoveVariableReferences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		remove  string
		want    string
	}{
		{"Collapses spaces", "Hello {{name}} there", "name", "Hello there"},
		{"Trims line edges", "{{name}} starts\nends {{name}}", "name", "starts\nends"},
		{"Collapses blank lines", "a\n\n{{x}}\n\n\nb", "x", "a\n\nb"},
		{"Keeps other placeholders", "{{a}} {{b}}", "a", "{{b}}"},
		{"Trimmed match", "x {{ a }} y", "a", "x y"},
		{"Metacharacters literal", "{{a+}} {{aa}}", "a+", "{{aa}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveVariableReferences(tt.content, tt.remove))
		})
	}
}
