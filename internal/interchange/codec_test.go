package interchange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

func strPtr(s string) *string { return &s }

func testCatalog() *Catalog {
	return NewCatalog(
		[]models.Category{
			{ID: "cat-web", Name: "Web Development"},
			{ID: "cat-content", Name: "Content Creation"},
		},
		[]models.Tag{
			{ID: "tag-zero-shot", Name: "Zero-Shot"},
			{ID: "tag-few-shot", Name: "Few-Shot"},
		},
	)
}

func blogTemplate() *models.PromptTemplate {
	return &models.PromptTemplate{
		ID:          "p-1",
		Name:        "Blog Post Generator",
		Description: "Writes a blog post",
		Content:     "Write a {{word_count}} word post about {{topic}}.\nKeep it {{tone}}.",
		Variables: []models.Variable{
			{Name: "word_count", Description: "Length", Type: models.VariableTypeNumber, Required: true, DefaultValue: "800"},
			{Name: "topic", Description: "Subject", Type: models.VariableTypeString, Required: true},
			{Name: "tone", Description: "Voice", Type: models.VariableTypeString, DefaultValue: "Professional"},
		},
		CategoryID: strPtr("cat-content"),
		TagIDs:     []string{"tag-few-shot", "tag-zero-shot"},
	}
}

func TestExport(t *testing.T) {
	catalog := testCatalog()

	out, err := Export(blogTemplate(), catalog, catalog)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Blog Post Generator", doc.Name)
	assert.Equal(t, "Content Creation", doc.Category)
	assert.Equal(t, []string{"Few-Shot", "Zero-Shot"}, doc.Tags)
	assert.Len(t, doc.Variables, 3)
	assert.Equal(t, "800", doc.Variables[0].DefaultValue)
	assert.Equal(t, "number", doc.Variables[0].Type)

	// Key order follows the document layout.
	assert.Regexp(t, `(?s)^name:.*\ndescription:.*\ncontent:.*\nvariables:.*\ncategory:.*\ntags:`, out)
	assert.Contains(t, out, "content: |-\n")
	assert.Contains(t, out, "defaultValue: Professional")
}

func TestExportOmitsUnresolvedReferences(t *testing.T) {
	catalog := testCatalog()

	tmpl := blogTemplate()
	tmpl.CategoryID = strPtr("cat-deleted")
	tmpl.TagIDs = []string{"tag-gone", "tag-zero-shot"}

	out, err := Export(tmpl, catalog, catalog)
	require.NoError(t, err)
	assert.NotContains(t, out, "category:")
	assert.Contains(t, out, "- Zero-Shot")
	assert.NotContains(t, out, "tag-gone")

	tmpl.CategoryID = nil
	tmpl.TagIDs = nil
	out, err = Export(tmpl, catalog, catalog)
	require.NoError(t, err)
	assert.NotContains(t, out, "category:")
	assert.NotContains(t, out, "tags:")
}

func TestExportKeepsEmptyDefault(t *testing.T) {
	tmpl := &models.PromptTemplate{
		Name:      "Plain",
		Content:   "Hi {{who}}",
		Variables: []models.Variable{{Name: "who", Type: models.VariableTypeString}},
	}
	out, err := Export(tmpl, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `defaultValue: ""`)
	assert.Contains(t, out, "required: false")

	draft, err := Import(out, nil, nil)
	require.NoError(t, err)
	require.Len(t, draft.Variables, 1)
	assert.Equal(t, "", draft.Variables[0].DefaultValue)
}

func TestExportImportRoundTrip(t *testing.T) {
	catalog := testCatalog()
	tmpl := blogTemplate()

	out, err := Export(tmpl, catalog, catalog)
	require.NoError(t, err)

	draft, err := Import(out, catalog, catalog)
	require.NoError(t, err)
	assert.Equal(t, tmpl.Name, draft.Name)
	assert.Equal(t, tmpl.Description, draft.Description)
	assert.Equal(t, tmpl.Content, draft.Content)
	assert.Equal(t, tmpl.VariableList(), draft.Variables)
	require.NotNil(t, draft.CategoryID)
	assert.Equal(t, "cat-content", *draft.CategoryID)
	assert.Equal(t, []string(tmpl.TagIDs), draft.TagIDs)
}

func TestExportImportRoundTripPreservesText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"Leading newline", "\n{{a}}"},
		{"Two leading newlines", "\n\n{{a}}"},
		{"Leading and trailing newlines", "\n\n\nx {{a}}\n"},
		{"Trailing blank lines", "x {{a}}\n\n\n"},
		{"Single trailing newline", "x {{a}}\n"},
		{"Leading spaces", "  indented {{a}}\nnext"},
		{"Yes", "yes"},
		{"Null", "null"},
		{"Tilde", "~"},
		{"Number", "0x1F"},
		{"Comment marker", "# heading {{a}}"},
		{"Sequence marker", "- item {{a}}"},
		{"Mapping lookalike", "{{a}}: value"},
		{"CRLF", "line one {{a}}\r\nline two\r\n"},
		{"Leading CRLF", "\r\n{{a}}"},
		{"Leading tab", "\tcol {{a}}\tcol\n\tnext"},
		{"Inner tabs", "col {{a}}\tcol\n\tnext"},
		{"Trailing spaces", "x {{a}}   "},
		{"Quotes", `say "hi" to '{{a}}'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &models.PromptTemplate{
				Name:        "Edge",
				Description: tt.text,
				Content:     tt.text,
				Variables: []models.Variable{
					{Name: "a", Description: tt.text, Type: models.VariableTypeString, DefaultValue: tt.text},
				},
			}

			out, err := Export(tmpl, nil, nil)
			require.NoError(t, err)

			draft, err := Import(out, nil, nil)
			require.NoError(t, err, out)
			assert.Equal(t, tt.text, draft.Description, out)
			assert.Equal(t, tt.text, draft.Content, out)
			require.Len(t, draft.Variables, 1)
			assert.Equal(t, tt.text, draft.Variables[0].Description, out)
			assert.Equal(t, tt.text, draft.Variables[0].DefaultValue, out)
		})
	}
}

func TestExportQuotesLeadingNewline(t *testing.T) {
	tmpl := &models.PromptTemplate{Name: "Edge", Content: "\n{{a}}"}
	out, err := Export(tmpl, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `content: "\n{{a}}"`)
}

func TestImportResolvesNamesIgnoringCase(t *testing.T) {
	catalog := testCatalog()
	text := `
name: Review
content: "Review {{code}}"
category: web development
tags:
  - ZERO-SHOT
  - zero-shot
  - Unknown Tag
`
	draft, err := Import(text, catalog, catalog)
	require.NoError(t, err)
	require.NotNil(t, draft.CategoryID)
	assert.Equal(t, "cat-web", *draft.CategoryID)
	assert.Equal(t, []string{"tag-zero-shot"}, draft.TagIDs)
	assert.Empty(t, draft.Variables)
}

func TestImportUnknownCategory(t *testing.T) {
	catalog := testCatalog()
	draft, err := Import("name: X\ncontent: body\ncategory: Nowhere\n", catalog, catalog)
	require.NoError(t, err)
	assert.Nil(t, draft.CategoryID)
	assert.Equal(t, []string{}, draft.TagIDs)
}

func TestImportDefaultsVariableType(t *testing.T) {
	text := `
name: X
content: "{{a}}"
variables:
  - name: a
    required: true
`
	draft, err := Import(text, nil, nil)
	require.NoError(t, err)
	require.Len(t, draft.Variables, 1)
	assert.Equal(t, models.VariableTypeString, draft.Variables[0].Type)
	assert.True(t, draft.Variables[0].Required)
}

func TestImportMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"Invalid YAML", "name: [unclosed"},
		{"Empty document", ""},
		{"Scalar document", "just text"},
		{"Sequence document", "- a\n- b\n"},
		{"Missing name", "content: body\n"},
		{"Blank name", "name: '  '\ncontent: body\n"},
		{"Missing content", "name: X\n"},
		{"Unknown variable type", "name: X\ncontent: body\nvariables:\n  - name: a\n    type: date\n"},
		{"Duplicate variable", "name: X\ncontent: body\nvariables:\n  - name: a\n  - name: a\n"},
		{"Unnamed variable", "name: X\ncontent: body\nvariables:\n  - type: string\n"},
		{"Wrong field type", "name: X\ncontent: body\nvariables: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := Import(tt.text, nil, nil)
			assert.Nil(t, draft)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)

			var mErr *MalformedInterchangeError
			assert.True(t, errors.As(err, &mErr))
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog := testCatalog()

	cat, ok := catalog.CategoryByID("cat-web")
	assert.True(t, ok)
	assert.Equal(t, "Web Development", cat.Name)

	_, ok = catalog.CategoryByID("missing")
	assert.False(t, ok)

	cat, ok = catalog.CategoryByName("  CONTENT creation ")
	assert.True(t, ok)
	assert.Equal(t, "cat-content", cat.ID)

	tag, ok := catalog.TagByName("few-shot")
	assert.True(t, ok)
	assert.Equal(t, "tag-few-shot", tag.ID)

	_, ok = catalog.TagByID("tag-nope")
	assert.False(t, ok)
}
