// Package interchange converts prompt templates to and from the YAML
// interchange format. Category and tag references travel by name so files stay
// importable between environments whose ids differ.
package interchange

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// ErrMalformed is wrapped by every MalformedInterchangeError.
var ErrMalformed = errors.New("malformed interchange document")

// MalformedInterchangeError reports import text that cannot become a template.
type MalformedInterchangeError struct {
	Reason string
	Err    error
}

func (e *MalformedInterchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformed, e.Reason)
}

func (e *MalformedInterchangeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

func malformed(reason string, err error) error {
	return &MalformedInterchangeError{Reason: reason, Err: err}
}

// Document is the interchange shape. Field order here is the field order of
// the emitted YAML.
type Document struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Content     string        `yaml:"content"`
	Variables   []VariableDoc `yaml:"variables"`
	Category    string        `yaml:"category,omitempty"`
	Tags        []string      `yaml:"tags,omitempty"`
}

type VariableDoc struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Type         string `yaml:"type"`
	Required     bool   `yaml:"required"`
	DefaultValue string `yaml:"defaultValue"`
}

// Export renders t as YAML. A category id that does not resolve is left out,
// as are tag ids that do not resolve.
func Export(t *models.PromptTemplate, categories CategoryLookup, tags TagLookup) (string, error) {
	doc := Document{
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		Variables:   make([]VariableDoc, 0, len(t.Variables)),
	}
	for _, v := range t.Variables {
		doc.Variables = append(doc.Variables, VariableDoc{
			Name:         v.Name,
			Description:  v.Description,
			Type:         string(v.Type),
			Required:     v.Required,
			DefaultValue: v.DefaultValue,
		})
	}
	if t.CategoryID != nil && categories != nil {
		if cat, ok := categories.CategoryByID(*t.CategoryID); ok {
			doc.Category = cat.Name
		}
	}
	if tags != nil {
		for _, id := range models.DedupeIDs(t.TagIDs) {
			if tag, ok := tags.TagByID(id); ok {
				doc.Tags = append(doc.Tags, tag.Name)
			}
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.node()); err != nil {
		return "", fmt.Errorf("encode interchange document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode interchange document: %w", err)
	}
	return buf.String(), nil
}

// node lays the document out by hand so each string scalar can pick its own
// style. As a literal block, yaml.v3 loses the first line break of a value
// that starts with one and cannot read back a first line that starts with a
// tab. Multi-line values that start with whitespace or end in blank lines are
// written double quoted instead.
func (d *Document) node() *yaml.Node {
	vars := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range d.Variables {
		item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		put(item, "name", str(v.Name))
		put(item, "description", str(v.Description))
		put(item, "type", str(v.Type))
		put(item, "required", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Required)})
		put(item, "defaultValue", str(v.DefaultValue))
		vars.Content = append(vars.Content, item)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	put(root, "name", str(d.Name))
	put(root, "description", str(d.Description))
	put(root, "content", str(d.Content))
	put(root, "variables", vars)
	if d.Category != "" {
		put(root, "category", str(d.Category))
	}
	if len(d.Tags) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, name := range d.Tags {
			seq.Content = append(seq.Content, str(name))
		}
		put(root, "tags", seq)
	}
	return root
}

func put(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func str(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	if strings.ContainsAny(v, "\n\r") && (strings.IndexAny(v, " \t\n\r") == 0 || strings.HasSuffix(v, "\n\n")) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// Import parses YAML into a draft. Structural problems fail the import; a
// category or tag name that does not resolve is dropped.
func Import(text string, categories CategoryLookup, tags TagLookup) (*models.TemplateDraft, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, malformed("invalid YAML", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, malformed("document must be a mapping", nil)
	}

	var doc Document
	if err := root.Content[0].Decode(&doc); err != nil {
		return nil, malformed("unexpected field type", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, malformed("name is required", nil)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, malformed("content is required", nil)
	}

	draft := &models.TemplateDraft{
		Name:        doc.Name,
		Description: doc.Description,
		Content:     doc.Content,
		TagIDs:      []string{},
		Variables:   make([]models.Variable, 0, len(doc.Variables)),
	}

	seen := make(map[string]struct{}, len(doc.Variables))
	for i, v := range doc.Variables {
		if strings.TrimSpace(v.Name) == "" {
			return nil, malformed(fmt.Sprintf("variables[%d]: name is required", i), nil)
		}
		if _, dup := seen[v.Name]; dup {
			return nil, malformed(fmt.Sprintf("variables[%d]: duplicate name %q", i, v.Name), nil)
		}
		seen[v.Name] = struct{}{}

		typ := models.VariableType(v.Type)
		if typ == "" {
			typ = models.VariableTypeString
		}
		if !typ.Valid() {
			return nil, malformed(fmt.Sprintf("variables[%d]: unknown type %q", i, v.Type), nil)
		}
		draft.Variables = append(draft.Variables, models.Variable{
			Name:         v.Name,
			Description:  v.Description,
			Type:         typ,
			Required:     v.Required,
			DefaultValue: v.DefaultValue,
		})
	}

	if doc.Category != "" && categories != nil {
		if cat, ok := categories.CategoryByName(doc.Category); ok {
			id := cat.ID
			draft.CategoryID = &id
		}
	}
	if tags != nil {
		ids := make([]string, 0, len(doc.Tags))
		for _, name := range doc.Tags {
			if tag, ok := tags.TagByName(name); ok {
				ids = append(ids, tag.ID)
			}
		}
		draft.TagIDs = models.DedupeIDs(ids)
	}
	return draft, nil
}
